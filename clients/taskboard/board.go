// Package taskboard keeps the client's local copy of the task list in step
// with server responses and turns each outcome into a user notice.
package taskboard

import (
	"slices"

	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

// NoticeKind classifies a notice.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "none"
	}
}

// Notice is a transient message shown to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Kind == NoticeNone
}

func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }
func failure(msg string) Notice { return Notice{Kind: NoticeError, Message: msg} }

const (
	msgFetchFailed  = "Failed to fetch tasks"
	msgCreated      = "Task created successfully"
	msgCreateFailed = "Failed to create task"
	msgUpdated      = "Task updated successfully"
	msgUpdateFailed = "Failed to update task"
	msgDeleted      = "Task deleted successfully"
	msgDeleteFailed = "Failed to delete task"
)

// Board is the ordered local collection. It is not safe for concurrent use;
// callers own it from a single goroutine.
type Board struct {
	tasks   []tasksclient.Task
	loading bool
}

// NewBoard returns an empty board in the loading state.
func NewBoard() *Board {
	return &Board{loading: true}
}

// Tasks returns a copy of the local collection in display order.
func (b *Board) Tasks() []tasksclient.Task {
	return slices.Clone(b.tasks)
}

// Len returns the number of local tasks.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Loading reports whether the initial fetch is still outstanding.
func (b *Board) Loading() bool {
	return b.loading
}

// SetLoading marks a fetch as in flight.
func (b *Board) SetLoading() {
	b.loading = true
}

// Find returns the local copy of id.
func (b *Board) Find(id string) (tasksclient.Task, bool) {
	i := b.index(id)
	if i < 0 {
		return tasksclient.Task{}, false
	}
	return b.tasks[i], true
}

// ToggleRequest builds the update that flips the completion of id, based on
// the local copy. ok is false when id is not held locally.
func (b *Board) ToggleRequest(id string) (tasksclient.UpdateTask, bool) {
	task, ok := b.Find(id)
	if !ok {
		return tasksclient.UpdateTask{}, false
	}
	completed := !task.Completed
	return tasksclient.UpdateTask{Completed: &completed}, true
}

// Loaded applies the result of a list request. Loading is cleared either way.
func (b *Board) Loaded(tasks []tasksclient.Task, err error) Notice {
	b.loading = false
	if err != nil {
		return failure(msgFetchFailed)
	}
	b.tasks = slices.Clone(tasks)
	return Notice{}
}

// Created applies the result of a create request. The new task goes first.
func (b *Board) Created(task tasksclient.Task, err error) Notice {
	if err != nil {
		if msg, ok := tasksclient.ServerMessage(err); ok {
			return failure(msg)
		}
		return failure(msgCreateFailed)
	}
	b.tasks = slices.Insert(b.tasks, 0, task)
	return success(msgCreated)
}

// Updated applies the result of an update request, replacing the local entry
// with the server's record.
func (b *Board) Updated(task tasksclient.Task, err error) Notice {
	if err != nil {
		return failure(msgUpdateFailed)
	}
	if i := b.index(task.ID); i >= 0 {
		b.tasks[i] = task
	}
	return success(msgUpdated)
}

// Deleted applies the result of a delete request.
func (b *Board) Deleted(id string, err error) Notice {
	if err != nil {
		return failure(msgDeleteFailed)
	}
	if i := b.index(id); i >= 0 {
		b.tasks = slices.Delete(b.tasks, i, i+1)
	}
	return success(msgDeleted)
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.tasks, func(t tasksclient.Task) bool {
		return t.ID == id
	})
}
