// Package storetest holds the behavior every tasksrepo.Storer must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

// Factory returns an empty store. Cleanup is registered on t.
type Factory func(t *testing.T) tasksrepo.Storer

// Run exercises a store through the repository.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo *tasksrepo.Repository)
	}{
		{"CreateAndGet", createAndGet},
		{"ListNewestFirst", listNewestFirst},
		{"UpdatePartial", updatePartial},
		{"DeleteThenMissing", deleteThenMissing},
		{"UnknownAndMalformedIDs", unknownAndMalformedIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tasksrepo.NewRepository(logger.NewDiscard(), newStore(t))
			tt.fn(t, repo)
		})
	}

	t.Run("StaleUpdateKeepsUpdatedAt", func(t *testing.T) {
		staleUpdateKeepsUpdatedAt(t, newStore(t))
	})
}

func mustCreate(t *testing.T, repo *tasksrepo.Repository, title string) tasksrepo.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), tasksrepo.CreateTask{Title: title, Description: title + " description"})
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	return task
}

func createAndGet(t *testing.T, repo *tasksrepo.Repository) {
	created := mustCreate(t, repo, "A")
	if created.TaskID == "" {
		t.Fatal("store did not assign an id")
	}

	got, err := repo.GetByID(context.Background(), created.TaskID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "A" || got.Description != "A description" || got.Completed {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps did not round trip: created %v/%v got %v/%v",
			created.CreatedAt, created.UpdatedAt, got.CreatedAt, got.UpdatedAt)
	}
	if got.CreatedAt.Location() != time.UTC {
		t.Errorf("createdAt location = %v, want UTC", got.CreatedAt.Location())
	}
}

func listNewestFirst(t *testing.T, repo *tasksrepo.Repository) {
	a := mustCreate(t, repo, "A")
	b := mustCreate(t, repo, "B")

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0].TaskID != b.TaskID || tasks[1].TaskID != a.TaskID {
		t.Errorf("order = [%s %s], want [%s %s]", tasks[0].Title, tasks[1].Title, "B", "A")
	}
}

func updatePartial(t *testing.T, repo *tasksrepo.Repository) {
	ctx := context.Background()
	created := mustCreate(t, repo, "A")

	toggled, err := repo.UpdateByID(ctx, created.TaskID, tasksrepo.UpdateTask{Completed: validation.BoolPtr(true)})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed || toggled.Title != "A" {
		t.Errorf("toggled = %+v", toggled)
	}
	if !toggled.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt %v not after %v", toggled.UpdatedAt, created.UpdatedAt)
	}

	renamed, err := repo.UpdateByID(ctx, created.TaskID, tasksrepo.UpdateTask{Title: validation.StringPtr(" B ")})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Title != "B" || !renamed.Completed || renamed.Description != "A description" {
		t.Errorf("renamed = %+v", renamed)
	}
	if !renamed.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed")
	}
}

func deleteThenMissing(t *testing.T, repo *tasksrepo.Repository) {
	ctx := context.Background()
	created := mustCreate(t, repo, "A")

	if err := repo.DeleteByID(ctx, created.TaskID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(ctx, created.TaskID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if _, err := repo.GetByID(ctx, created.TaskID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("get err = %v", err)
	}
	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len = %d, want 0", len(tasks))
	}
}

func unknownAndMalformedIDs(t *testing.T, repo *tasksrepo.Repository) {
	ctx := context.Background()
	for _, id := range []string{"000000000000000000000000", "00000000-0000-0000-0000-000000000000", "not-an-id"} {
		if _, err := repo.UpdateByID(ctx, id, tasksrepo.UpdateTask{}); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("update %q err = %v", id, err)
		}
		if err := repo.DeleteByID(ctx, id); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("delete %q err = %v", id, err)
		}
	}
}

// staleUpdateKeepsUpdatedAt covers two PATCHes racing: the one computed from
// an older read lands second and must not move updatedAt backwards.
func staleUpdateKeepsUpdatedAt(t *testing.T, store tasksrepo.Storer) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	created, err := store.Create(ctx, tasksrepo.Task{
		Title:       "A",
		Description: "A description",
		CreatedAt:   base,
		UpdatedAt:   base,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newer := base.Add(2 * time.Millisecond)
	if _, err := store.Update(ctx, created.TaskID, tasksrepo.TaskPatch{
		Completed: validation.BoolPtr(true),
		UpdatedAt: newer,
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	got, err := store.Update(ctx, created.TaskID, tasksrepo.TaskPatch{
		Title:     validation.StringPtr("B"),
		UpdatedAt: base.Add(time.Millisecond),
	})
	if err != nil {
		t.Fatalf("stale update: %v", err)
	}
	if got.Title != "B" || !got.Completed {
		t.Errorf("fields = %+v, want both writes applied", got)
	}
	if !got.UpdatedAt.Equal(newer) {
		t.Errorf("updatedAt = %v, want %v", got.UpdatedAt, newer)
	}
}
