package taskboard

import (
	"context"

	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

// API is the subset of the tasks client a session needs.
type API interface {
	List(ctx context.Context) ([]tasksclient.Task, error)
	Create(ctx context.Context, in tasksclient.CreateTask) (tasksclient.Task, error)
	Update(ctx context.Context, id string, in tasksclient.UpdateTask) (tasksclient.Task, error)
	Delete(ctx context.Context, id string) (string, error)
}

// Session couples an API with a board. Each call issues at most one request
// and applies its result before returning.
type Session struct {
	api   API
	board *Board
}

// NewSession returns a session over api with a fresh board.
func NewSession(api API) *Session {
	return &Session{api: api, board: NewBoard()}
}

// Board exposes the session's local state.
func (s *Session) Board() *Board {
	return s.board
}

// Refresh replaces the local collection with the server's list.
func (s *Session) Refresh(ctx context.Context) Notice {
	s.board.SetLoading()
	tasks, err := s.api.List(ctx)
	return s.board.Loaded(tasks, err)
}

// Create submits a new task.
func (s *Session) Create(ctx context.Context, title, description string) Notice {
	task, err := s.api.Create(ctx, tasksclient.CreateTask{Title: title, Description: description})
	return s.board.Created(task, err)
}

// ToggleComplete flips the completion flag of a locally known task. Unknown
// ids are ignored without a request.
func (s *Session) ToggleComplete(ctx context.Context, id string) Notice {
	in, ok := s.board.ToggleRequest(id)
	if !ok {
		return Notice{}
	}
	task, err := s.api.Update(ctx, id, in)
	return s.board.Updated(task, err)
}

// Edit sends a partial update.
func (s *Session) Edit(ctx context.Context, id string, in tasksclient.UpdateTask) Notice {
	task, err := s.api.Update(ctx, id, in)
	return s.board.Updated(task, err)
}

// Delete removes a task.
func (s *Session) Delete(ctx context.Context, id string) Notice {
	_, err := s.api.Delete(ctx, id)
	return s.board.Deleted(id, err)
}
