// Package api wires the HTTP surface of the tasktracker service.
package api

import (
	"context"
	"net/http"

	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/resp"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

// AddHandlers registers the API routes and the metrics endpoint.
func AddHandlers(h *web.WebHandler, cfg config.TaskTracker) {
	api := h.Group("/" + config.ApiRoute)

	api.GET("/health", health(cfg))

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	if cfg.Metrics != nil {
		h.HandleRaw("GET /metrics", cfg.Metrics.Handler())
	}
}

func health(cfg config.TaskTracker) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if cfg.StatusCheck != nil {
			if err := cfg.StatusCheck(ctx); err != nil {
				cfg.Logger.WarnContext(ctx, "health", "status", "store unavailable", "err", err)
				return resp.NewStatusResponse("unavailable", http.StatusServiceUnavailable)
			}
		}
		return resp.NewStatusResponse("ok", http.StatusOK)
	}
}
