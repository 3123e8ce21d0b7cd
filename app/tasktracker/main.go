package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

var build = "develop"
var appName = "TASKS"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	log, err := logger.NewFromEnv(appName,
		logger.WithService("tasktracker"),
		logger.WithTraceID(telemetry.LogTraceID),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuring logger: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	backend, storeOpts, err := stores.OpenFromEnv(ctx, log, appName)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing store connection", "driver", backend.Driver)
		if err := backend.Close(context.Background()); err != nil {
			log.ErrorContext(ctx, "shutdown", "status", "closing store", "err", err)
		}
	}()
	log.InfoContext(ctx, "startup", "status", "store connected", "driver", backend.Driver)

	if storeOpts.AutoMigrate {
		if err := backend.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating store: %w", err)
		}
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")

	cfg := config.TaskTracker{
		Build:   build,
		Logger:  log,
		Metrics: metrics.New("tasks"),
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, backend.Storer),
		},
		StatusCheck: backend.StatusCheck,
	}

	handler, err := webHandler(cfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.TaskTracker) (*web.WebHandler, error) {
	h, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(cfg.Metrics),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	api.AddHandlers(h, cfg)

	return h, nil
}
