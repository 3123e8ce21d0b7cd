package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrazmi/tasktracker/clients/taskboard"
	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

// Requests run off the UI goroutine; their results come back as messages.

func fetchTasks(api taskboard.API, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks, err := api.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func createTask(api taskboard.API, timeout time.Duration, in tasksclient.CreateTask) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		task, err := api.Create(ctx, in)
		return taskCreatedMsg{task: task, err: err}
	}
}

func updateTask(api taskboard.API, timeout time.Duration, id string, in tasksclient.UpdateTask) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		task, err := api.Update(ctx, id, in)
		return taskUpdatedMsg{task: task, err: err}
	}
}

func deleteTask(api taskboard.API, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := api.Delete(ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}

func expireToast(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
