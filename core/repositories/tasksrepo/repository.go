// Package tasksrepo provides the business access to tasks.
package tasksrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Storer is the persistence behavior a task backend provides. Stores
// return repositories.ErrNotFound for unknown or malformed ids.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, taskID string) (Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, taskID string, patch TaskPatch) (Task, error)
	Delete(ctx context.Context, taskID string) error
}

type Repository struct {
	log    *logger.Logger
	storer Storer
	clock  *clock
}

// Option configures a Repository.
type Option func(*Repository)

// WithNow replaces the wall clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *Repository) {
		r.clock = newClock(now)
	}
}

func NewRepository(log *logger.Logger, storer Storer, opts ...Option) *Repository {
	r := &Repository{
		log:    log,
		storer: storer,
		clock:  newClock(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns every task, newest created first.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	if records == nil {
		records = []Task{}
	}
	return records, nil
}

func (r *Repository) GetByID(ctx context.Context, taskID string) (Task, error) {
	record, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("task repository get by id: %w", err)
	}
	return record, nil
}

// Create validates input and stores a new, incomplete task.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	input, err := input.normalize()
	if err != nil {
		return Task{}, err
	}

	now := r.clock.next(time.Time{})
	record, err := r.storer.Create(ctx, Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", record.TaskID)
	return record, nil
}

// UpdateByID applies the present fields of input and refreshes UpdatedAt.
func (r *Repository) UpdateByID(ctx context.Context, taskID string, input UpdateTask) (Task, error) {
	input, err := input.normalize()
	if err != nil {
		return Task{}, err
	}

	current, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("task repository update: %w", err)
	}

	record, err := r.storer.Update(ctx, taskID, TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		UpdatedAt:   r.clock.next(current.UpdatedAt),
	})
	if err != nil {
		return Task{}, fmt.Errorf("task repository update: %w", err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", record.TaskID)
	return record, nil
}

func (r *Repository) DeleteByID(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("task repository delete: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}
