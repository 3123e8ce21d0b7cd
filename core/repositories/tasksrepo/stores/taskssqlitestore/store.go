// Package taskssqlitestore persists tasks in an embedded SQLite database.
package taskssqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Timestamps are stored as unix milliseconds.
const columns = `task_id, title, description, completed, created_at, updated_at`

type Store struct {
	log *logger.Logger
	db  *sql.DB
}

func NewStore(log *logger.Logger, db *sql.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (tasksrepo.Task, error) {
	var (
		t                tasksrepo.Task
		created, updated int64
	)
	if err := row.Scan(&t.TaskID, &t.Title, &t.Description, &t.Completed, &created, &updated); err != nil {
		return tasksrepo.Task{}, err
	}
	t.CreatedAt = time.UnixMilli(created).UTC()
	t.UpdatedAt = time.UnixMilli(updated).UTC()
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM tasks ORDER BY created_at DESC, task_id DESC`)
	if err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}
	defer rows.Close()

	tasks := []tasksrepo.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, sqlitedb.HandleSQLiteError(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM tasks WHERE task_id = ?`, taskID)
	return s.one(row)
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (`+columns+`) VALUES (?, ?, ?, ?, ?, ?) RETURNING `+columns,
		uuid.NewString(),
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt.UnixMilli(),
		task.UpdatedAt.UnixMilli(),
	)
	return s.one(row)
}

func (s *Store) Update(ctx context.Context, taskID string, patch tasksrepo.TaskPatch) (tasksrepo.Task, error) {
	row := s.db.QueryRowContext(ctx, `UPDATE tasks SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			completed = COALESCE(?, completed),
			updated_at = MAX(updated_at, ?)
		WHERE task_id = ?
		RETURNING `+columns,
		nullString(patch.Title),
		nullString(patch.Description),
		nullBool(patch.Completed),
		patch.UpdatedAt.UnixMilli(),
		taskID,
	)
	return s.one(row)
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, taskID)
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) one(row *sql.Row) (tasksrepo.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		err = sqlitedb.HandleSQLiteError(err)
		if errors.Is(err, sqlitedb.ErrDBNotFound) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, err
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
