// Package commands holds the taskctl command tree.
package commands

import (
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskctl",
		Usage: "Manage tasks on a tasktracker server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Aliases: []string{"u"},
				Usage:   "Base URL of the tasks API",
				Value:   tasksclient.DefaultBaseURL,
				Sources: cli.EnvVars("TASKCTL_API_URL"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-request timeout",
				Value:   tasksclient.DefaultTimeout,
				Sources: cli.EnvVars("TASKCTL_TIMEOUT"),
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewListCommand(),
			NewShowCommand(),
			NewAddCommand(),
			NewDoneCommand(),
			NewEditCommand(),
			NewRemoveCommand(),
		},
		DefaultCommand: "tui",
	}
}

// userAgent is sent on every request so server logs can tell taskctl apart.
const userAgent = "taskctl"

func newClient(cmd *cli.Command) (*tasksclient.Client, error) {
	hc := &http.Client{Transport: agentTransport{next: http.DefaultTransport}}
	return tasksclient.New(cmd.String("api-url"),
		tasksclient.WithHTTPClient(hc),
		tasksclient.WithTimeout(cmd.Duration("timeout")),
	)
}

type agentTransport struct {
	next http.RoundTripper
}

func (t agentTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", userAgent)
	return t.next.RoundTrip(r)
}
