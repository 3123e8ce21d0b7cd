package tasksrepobridge

import (
	"encoding/json"
)

// Task is the wire representation of a task.
type Task struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (t Task) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json; charset=utf-8", err
}

// Tasks encodes as a JSON array, never null.
type Tasks []Task

func (ts Tasks) Encode() ([]byte, string, error) {
	if ts == nil {
		ts = Tasks{}
	}
	data, err := json.Marshal([]Task(ts))
	return data, "application/json; charset=utf-8", err
}

// CreateTaskInput is the POST body.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskInput is the PATCH body. Absent fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
