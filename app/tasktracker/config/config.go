package config

import (
	"context"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// site wide globals.
const (
	ApiRoute = "api"
)

// Repositories represents the repositories this instance serves.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// TaskTracker is the overall configuration for the tasktracker application.
type TaskTracker struct {
	Build   string
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	Repositories Repositories

	// StatusCheck reports whether the backing store is reachable.
	StatusCheck func(ctx context.Context) error
}
