package tasksrepo

import "time"

// Task is a single tracked unit of work.
type Task struct {
	TaskID      string    `db:"task_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CreateTask contains the fields accepted when creating a task.
type CreateTask struct {
	Title       string
	Description string
}

// UpdateTask contains fields for updating an existing task.
// All fields are optional (pointers) to support partial updates.
type UpdateTask struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskPatch is what a store writes for an update. UpdatedAt is always set,
// and a store keeps the later of it and the stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	UpdatedAt   time.Time
}
