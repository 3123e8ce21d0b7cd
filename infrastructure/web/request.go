package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps the request bodies Decode will read.
const MaxBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned by Decode when the request carries no body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge is returned by Decode when the body exceeds MaxBodyBytes.
	ErrBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
)

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// Decode reads at most MaxBodyBytes of the request body and unmarshals it
// as JSON into v.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("unable to read request body: %w", err)
	}

	if len(data) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}
