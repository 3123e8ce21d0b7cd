package postgresdb

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

// queryLogger is a pgx.QueryTracer that logs each statement once it finishes.
type queryLogger struct {
	log *slog.Logger
}

func (q *queryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL, args: len(data.Args)})
}

func (q *queryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	attrs := []any{
		slog.String("sql", compactSQL(start.sql)),
		slog.Int("args", start.args),
		slog.Duration("took", time.Since(start.at)),
		slog.String("tag", data.CommandTag.String()),
	}
	if data.Err != nil {
		q.log.ErrorContext(ctx, "query failed", append(attrs, slog.Any("err", data.Err))...)
		return
	}
	q.log.DebugContext(ctx, "query", attrs...)
}

type queryStart struct {
	at   time.Time
	sql  string
	args int
}

// compactSQL folds a multi-line statement onto one line.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
