package tasksrepobridge

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   validation.FormatTime(task.CreatedAt),
		UpdatedAt:   validation.FormatTime(task.UpdatedAt),
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) Tasks {
	bridgeTasks := make(Tasks, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input
func MarshalCreateToRepository(input CreateTaskInput) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:       input.Title,
		Description: input.Description,
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input
func MarshalUpdateToRepository(input UpdateTaskInput) tasksrepo.UpdateTask {
	return tasksrepo.UpdateTask{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}
}
