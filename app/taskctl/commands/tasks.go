package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/jrazmi/tasktracker/clients/taskboard"
	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tasks, newest first",
		Flags:   []cli.Flag{outputFlag()},
		Action:  runList,
	}
}

// NewShowCommand returns the show subcommand.
func NewShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show task details",
		ArgsUsage: "<task_id>",
		Flags:     []cli.Flag{outputFlag()},
		Action:    runShow,
	}
}

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a task",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Task title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Task description"},
		},
		Action: runAdd,
	}
}

// NewDoneCommand returns the toggle subcommand.
func NewDoneCommand() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Toggle a task's completion",
		ArgsUsage: "<task_id>",
		Action:    runDone,
	}
}

// NewEditCommand returns the edit subcommand.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a task's title or description",
		ArgsUsage: "<task_id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
		},
		Action: runEdit,
	}
}

// NewRemoveCommand returns the delete subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<task_id>",
		Action:    runRemove,
	}
}

// newSession builds a session and loads the current list, the way a freshly
// opened board would before acting on a task.
func newSession(ctx context.Context, cmd *cli.Command) (*taskboard.Session, error) {
	client, err := newClient(cmd)
	if err != nil {
		return nil, err
	}
	s := taskboard.NewSession(client)
	if err := report(s.Refresh(ctx)); err != nil {
		return nil, err
	}
	return s, nil
}

// report prints a success notice and turns a failure notice into an error.
func report(n taskboard.Notice) error {
	switch n.Kind {
	case taskboard.NoticeError:
		return errors.New(n.Message)
	case taskboard.NoticeSuccess:
		fmt.Fprintln(stdout, n.Message)
	}
	return nil
}

func taskArg(cmd *cli.Command) (string, error) {
	id := cmd.Args().First()
	if id == "" {
		return "", fmt.Errorf("usage: taskctl %s <task_id>", cmd.Name)
	}
	return id, nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}

	tasks := s.Board().Tasks()
	if ok, err := encode(stdout, cmd.String("output"), tasks); ok {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tDESCRIPTION\tCREATED")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			done,
			t.Title,
			t.Description,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	id, err := taskArg(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	t, err := client.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task from %s: %w", client.BaseURL(), err)
	}
	if ok, err := encode(stdout, cmd.String("output"), t); ok {
		return err
	}

	fmt.Fprintf(stdout, "ID:          %s\n", t.ID)
	fmt.Fprintf(stdout, "Title:       %s\n", t.Title)
	fmt.Fprintf(stdout, "Completed:   %t\n", t.Completed)
	fmt.Fprintf(stdout, "Created:     %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(stdout, "Updated:     %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(stdout, "\nDescription:\n%s\n", renderMarkdown(t.Description, 80))
	return nil
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	s := taskboard.NewSession(client)
	return report(s.Create(ctx, cmd.String("title"), cmd.String("description")))
}

func runDone(ctx context.Context, cmd *cli.Command) error {
	id, err := taskArg(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	if _, ok := s.Board().Find(id); !ok {
		return fmt.Errorf("task %s not found", id)
	}
	return report(s.ToggleComplete(ctx, id))
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := taskArg(cmd)
	if err != nil {
		return err
	}

	var in tasksclient.UpdateTask
	if cmd.IsSet("title") {
		title := cmd.String("title")
		in.Title = &title
	}
	if cmd.IsSet("description") {
		desc := cmd.String("description")
		in.Description = &desc
	}
	if in.Title == nil && in.Description == nil {
		return errors.New("nothing to change: pass --title and/or --description")
	}

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	return report(s.Edit(ctx, id, in))
}

func runRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := taskArg(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	return report(s.Delete(ctx, id))
}
