package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/resp"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	records, err := b.tasksRepository.List(ctx)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}
	return MarshalListToBridge(records)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	record, err := b.tasksRepository.GetByID(ctx, web.Param(r, "task_id"))
	if err != nil {
		return appError(err)
	}
	return MarshalToBridge(record)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTaskInput
	if err := decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid request body: %s", err)
	}

	record, err := b.tasksRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return appError(err)
	}
	return web.NewJSONResponseWithStatus(MarshalToBridge(record), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	var input UpdateTaskInput
	if err := decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid request body: %s", err)
	}

	record, err := b.tasksRepository.UpdateByID(ctx, web.Param(r, "task_id"), MarshalUpdateToRepository(input))
	if err != nil {
		return appError(err)
	}
	return MarshalToBridge(record)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	if err := b.tasksRepository.DeleteByID(ctx, web.Param(r, "task_id")); err != nil {
		return appError(err)
	}
	return resp.NewMessageResponse("Task deleted successfully")
}

// decode treats a missing body as an empty object so validation reports
// the missing fields.
func decode(r *http.Request, v any) error {
	err := web.Decode(r, v)
	if errors.Is(err, web.ErrEmptyBody) {
		return nil
	}
	return err
}

func appError(err error) *errs.Error {
	var verr *tasksrepo.ValidationError
	switch {
	case errors.As(err, &verr):
		return errs.Newf(errs.InvalidArgument, "%s", verr.Message)
	case errors.Is(err, repositories.ErrNotFound):
		return errs.Newf(errs.NotFound, "Task not found")
	default:
		return errs.New(errs.InternalOnlyLog, err)
	}
}
