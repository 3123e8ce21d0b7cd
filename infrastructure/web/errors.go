package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a bare {message} body for failures raised by the web layer
// itself, before application error handling is reached.
type ErrorResponse struct {
	Message string `json:"message"`
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, jsonContentType, err
}

func (e ErrorResponse) HTTPStatus() int {
	return http.StatusInternalServerError
}
