// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode names a failure class and the HTTP status it is reported with.
type ErrCode struct {
	name   string
	status int
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return ec.name
}

// HTTPStatus returns the http status the code is reported with.
func (ec ErrCode) HTTPStatus() int {
	return ec.status
}

var (
	InvalidArgument = ErrCode{name: "invalid_argument", status: http.StatusBadRequest}
	NotFound        = ErrCode{name: "not_found", status: http.StatusNotFound}
	Internal        = ErrCode{name: "internal", status: http.StatusInternalServerError}

	// InternalOnlyLog is logged in full but reaches the client as Internal.
	InternalOnlyLog = ErrCode{name: "internal_only_log", status: http.StatusInternalServerError}
)

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on a error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web package can report the correct http status.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// GetError returns the *Error in err's chain, or nil.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
