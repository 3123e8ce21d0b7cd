// Package resp holds the small response bodies shared by bridges.
package resp

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is a bare {message} body.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func (m MessageResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json; charset=utf-8", err
}

// StatusResponse reports service health.
type StatusResponse struct {
	Status string `json:"status"`
	code   int
}

func NewStatusResponse(status string, code int) StatusResponse {
	return StatusResponse{Status: status, code: code}
}

func (s StatusResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json; charset=utf-8", err
}

func (s StatusResponse) HTTPStatus() int {
	if s.code == 0 {
		return http.StatusOK
	}
	return s.code
}
