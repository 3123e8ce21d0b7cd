package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/tasktracker/app/tooling/commands"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

var build = "develop"

// Tooling reads the same settings as the service.
var appName = "TASKS"

func processCommands(ctx context.Context, log *logger.Logger, command string, backend *stores.Backend) error {
	switch command {
	case "migrate":
		log.InfoContext(ctx, "running migration")
		if err := commands.Migrate(ctx, backend, log.Logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	case "status":
		return commands.Status(ctx, backend, log.Logger)

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate - create the schema for the configured store driver")
	fmt.Println("  status  - check that the configured store is reachable")
	fmt.Println()
	fmt.Println("The store is selected with TASKS_STORE_DRIVER (mongo, postgres, sqlite).")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	backend, _, err := stores.OpenFromEnv(ctx, log, appName)
	if err != nil {
		return fmt.Errorf("configuring store support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		backend.Close(context.Background())
	}()
	log.InfoContext(ctx, "init", "service", backend.Driver)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- processCommands(ctx, log, command, backend)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		select {
		case err := <-done:
			return err
		case <-shutdownCtx.Done():
			return fmt.Errorf("shutdown timeout: %w", shutdownCtx.Err())
		}
	}
}

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	log, err := logger.NewFromEnv(appName, logger.WithService("tooling"))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
