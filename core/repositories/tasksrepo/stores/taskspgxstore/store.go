// Package taskspgxstore persists tasks in PostgreSQL.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

const columns = `task_id::text AS task_id, title, description, completed, created_at, updated_at`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT ` + columns + `
		FROM tasks
		ORDER BY created_at DESC, task_id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	for i := range tasks {
		tasks[i] = normalize(tasks[i])
	}
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	query := `SELECT ` + columns + `
		FROM tasks
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
	}

	return s.one(ctx, query, args)
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, title, description, completed, created_at, updated_at)
		VALUES (@task_id, @title, @description, @completed, @created_at, @updated_at)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"task_id":     uuid.NewString(),
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}

	return s.one(ctx, query, args)
}

func (s *Store) Update(ctx context.Context, taskID string, patch tasksrepo.TaskPatch) (tasksrepo.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	query := `UPDATE tasks SET
			title = COALESCE(@title::text, title),
			description = COALESCE(@description::text, description),
			completed = COALESCE(@completed::boolean, completed),
			updated_at = GREATEST(updated_at, @updated_at)
		WHERE task_id = @task_id
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"task_id":     taskID,
		"title":       patch.Title,
		"description": patch.Description,
		"completed":   patch.Completed,
		"updated_at":  patch.UpdatedAt,
	}

	return s.one(ctx, query, args)
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return repositories.ErrNotFound
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = @task_id`, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) one(ctx context.Context, query string, args pgx.NamedArgs) (tasksrepo.Task, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	// CollectOneRow returns the first row, or pgx.ErrNoRows if no rows
	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		err = postgresdb.HandlePgError(err)
		if errors.Is(err, postgresdb.ErrDBNotFound) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, fmt.Errorf("collect task: %w", err)
	}

	return normalize(task), nil
}

func normalize(t tasksrepo.Task) tasksrepo.Task {
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t
}
