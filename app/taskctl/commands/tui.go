package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jrazmi/tasktracker/clients/tui"
)

// NewTUICommand returns the interactive terminal UI command.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive task board",
		Action: runTUI,
	}
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	return tui.Run(client, tui.WithRequestTimeout(cmd.Duration("timeout")))
}
