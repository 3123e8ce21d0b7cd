// Package validation holds small helpers shared by input models.
package validation

import (
	"strings"
	"time"
)

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

// TrimRequired trims surrounding whitespace and reports whether anything is left.
func TrimRequired(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}

// TrimPtr returns a pointer to the trimmed value, or nil when s is nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ISOMillis is the timestamp layout used on the wire: UTC with milliseconds.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in UTC using ISOMillis. The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOMillis)
}

// FieldErrors collects named field failures in the order they were found.
type FieldErrors []FieldError

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// Add records a failure for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + " " + f.Message
	}
	return strings.Join(parts, "; ")
}
