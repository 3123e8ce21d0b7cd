package mongodb

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

func TestFailedCommandMonitorLogs(t *testing.T) {
	var buf bytes.Buffer
	mon := failedCommandMonitor(slog.New(slog.NewTextHandler(&buf, nil)))

	if mon.Started != nil || mon.Succeeded != nil {
		t.Fatal("only failures should be monitored")
	}

	mon.Failed(context.Background(), &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{
			CommandName:  "update",
			DatabaseName: "tasktracker",
			RequestID:    42,
			Duration:     3 * time.Millisecond,
		},
		Failure: "E11000 duplicate key",
	})

	out := buf.String()
	for _, want := range []string{
		`level=ERROR`,
		`msg="mongodb command failed"`,
		`command=update`,
		`database=tasktracker`,
		`request_id=42`,
		`err="E11000 duplicate key"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q\n%s", want, out)
		}
	}
}
