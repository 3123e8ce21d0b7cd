package tasksrepo

import (
	"errors"
	"strings"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

// ErrInvalidTask is matched by every validation failure.
var ErrInvalidTask = errors.New("invalid task")

// ValidationError reports which fields were rejected and a readable message.
type ValidationError struct {
	Fields  validation.FieldErrors
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}

func newValidationError(fe validation.FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe, Message: message(fe)}
}

// message joins two fields sharing a failure into one sentence, so a create
// with neither field reads "title and description are required".
func message(fe validation.FieldErrors) string {
	if len(fe) != 2 || fe[0].Message != fe[1].Message {
		return fe.Error()
	}
	verb := fe[0].Message
	if rest, ok := strings.CutPrefix(verb, "is "); ok {
		verb = "are " + rest
	}
	return fe[0].Field + " and " + fe[1].Field + " " + verb
}

func (c CreateTask) normalize() (CreateTask, error) {
	var fe validation.FieldErrors

	title, ok := validation.TrimRequired(c.Title)
	if !ok {
		fe.Add("title", "is required")
	}
	description, ok := validation.TrimRequired(c.Description)
	if !ok {
		fe.Add("description", "is required")
	}

	if err := newValidationError(fe); err != nil {
		return CreateTask{}, err
	}
	return CreateTask{Title: title, Description: description}, nil
}

func (u UpdateTask) normalize() (UpdateTask, error) {
	var fe validation.FieldErrors

	out := UpdateTask{
		Title:       validation.TrimPtr(u.Title),
		Description: validation.TrimPtr(u.Description),
		Completed:   u.Completed,
	}
	if out.Title != nil && *out.Title == "" {
		fe.Add("title", "must not be empty")
	}
	if out.Description != nil && *out.Description == "" {
		fe.Add("description", "must not be empty")
	}

	if err := newValidationError(fe); err != nil {
		return UpdateTask{}, err
	}
	return out, nil
}
