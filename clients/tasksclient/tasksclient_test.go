package tasksclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrazmi/tasktracker/clients/tasksclient"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

func TestUpdateSendsOnlyPresentFields(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"_id":"a1","title":"A","description":"x","completed":true,"createdAt":"2024-03-01T09:00:00.000Z","updatedAt":"2024-03-01T09:00:01.000Z"}`)
	}))
	defer srv.Close()

	c, err := tasksclient.New(srv.URL + "/api/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	task, err := c.Update(context.Background(), "a1", tasksclient.UpdateTask{Completed: validation.BoolPtr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/tasks/a1" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 1 || gotBody["completed"] != true {
		t.Errorf("body = %v", gotBody)
	}
	if !task.Completed || task.ID != "a1" || task.UpdatedAt.Sub(task.CreatedAt).Seconds() != 1 {
		t.Errorf("task = %+v", task)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"title is required"}`)
	}))
	defer srv.Close()

	c, _ := tasksclient.New(srv.URL)
	_, err := c.Create(context.Background(), tasksclient.CreateTask{Description: "x"})

	var apiErr *tasksclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if msg, ok := tasksclient.ServerMessage(err); !ok || msg != "title is required" {
		t.Errorf("server message = %q %v", msg, ok)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := tasksclient.New(srv.URL)
	_, err := c.List(context.Background())
	if _, ok := tasksclient.ServerMessage(err); ok {
		t.Fatal("expected no server message")
	}
	var apiErr *tasksclient.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("err = %v", err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := tasksclient.New("/api"); err == nil {
		t.Fatal("expected error")
	}
}
