// Package tasksrepobridge exposes the task repository over HTTP.
package tasksrepobridge

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)
	tasks := group.Group("/tasks", cfg.Middleware...)

	tasks.GET("", b.httpList)
	tasks.POST("", b.httpCreate)
	tasks.GET("/{task_id}", b.httpGetByID)
	tasks.PATCH("/{task_id}", b.httpUpdate)
	tasks.DELETE("/{task_id}", b.httpDelete)
}
