package tui

import "github.com/jrazmi/tasktracker/clients/tasksclient"

// tasksLoadedMsg carries the result of a list request.
type tasksLoadedMsg struct {
	tasks []tasksclient.Task
	err   error
}

// taskCreatedMsg carries the result of a create request.
type taskCreatedMsg struct {
	task tasksclient.Task
	err  error
}

// taskUpdatedMsg carries the result of a toggle or edit.
type taskUpdatedMsg struct {
	task tasksclient.Task
	err  error
}

// taskDeletedMsg carries the result of a delete request.
type taskDeletedMsg struct {
	id  string
	err error
}

// toastExpiredMsg hides the toast with the matching sequence number.
type toastExpiredMsg struct {
	seq int
}
