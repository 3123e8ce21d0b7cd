package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jrazmi/tasktracker/app/taskctl/commands"
	"github.com/jrazmi/tasktracker/sdk/environment"
)

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "taskctl: %v\n", err)
		os.Exit(1)
	}
}
