package mid

import (
	"context"
	"net/http"
	"path"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// internalMessage is all a client learns about an unexpected failure.
const internalMessage = "Internal Server Error"

// Errors logs every error a handler returns and decides what the client sees.
// Coded errors keep their message, InternalOnlyLog and uncoded errors are
// reported as a bare 500.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.GetError(err)
			if appErr == nil {
				log.ErrorContext(ctx, "unhandled error during request",
					"err", err, "method", r.Method, "path", r.URL.Path)
				return errs.Newf(errs.Internal, internalMessage)
			}

			log.ErrorContext(ctx, "handled error during request",
				"err", err,
				"code", appErr.Code.String(),
				"status", appErr.HTTPStatus(),
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				return errs.Newf(errs.Internal, internalMessage)
			}
			return appErr
		}
	}
}
