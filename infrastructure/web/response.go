package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const jsonContentType = "application/json; charset=utf-8"

// JSONResponse encodes Data as JSON and answers with Status (200 when unset).
type JSONResponse[T any] struct {
	Data   T
	Status int
}

func (j *JSONResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(j.Data)
	if err != nil {
		return nil, "", err
	}
	return data, jsonContentType, nil
}

func (j *JSONResponse[T]) HTTPStatus() int {
	if j.Status == 0 {
		return http.StatusOK
	}
	return j.Status
}

func NewJSONResponseWithStatus[T any](data T, status int) *JSONResponse[T] {
	return &JSONResponse[T]{Data: data, Status: status}
}

type httpStatus interface {
	HTTPStatus() int
}

// Respond writes resp to the client. A nil response is a 204. An error that
// does not carry its own status is never echoed: the client gets a generic
// {message} body with a 500.
func Respond(ctx context.Context, w http.ResponseWriter, resp Encoder) error {
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return errors.New("client disconnected, do not send response")
	}

	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	statusCode := http.StatusOK
	switch v := resp.(type) {
	case httpStatus:
		statusCode = v.HTTPStatus()
	case error:
		resp = NewError(http.StatusText(http.StatusInternalServerError))
		statusCode = http.StatusInternalServerError
	}

	data, contentType, err := resp.Encode()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("respond: encode: %w", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("respond: write: %w", err)
	}
	return nil
}
