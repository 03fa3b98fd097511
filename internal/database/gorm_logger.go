package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlLogLimit caps the SQL text included in a log line. Seed batches
// produce multi-kilobyte inserts that would drown the log otherwise.
const sqlLogLimit = 200

// slogGormLogger adapts slog to GORM's logger.Interface. Successful
// queries log at Debug, failures at Error. ErrRecordNotFound and
// ErrDuplicatedKey are expected outcomes, not failures: the first is
// the normal empty result of a lookup, the second the losing side of a
// racing insert that callers recover from by re-reading.
type slogGormLogger struct{}

func (l slogGormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

func (l slogGormLogger) Info(_ context.Context, msg string, args ...any) {
	slog.Info(fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Warn(_ context.Context, msg string, args ...any) {
	slog.Warn(fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Error(_ context.Context, msg string, args ...any) {
	slog.Error(fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	failed := err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) &&
		!errors.Is(err, gorm.ErrDuplicatedKey)

	level := slog.LevelDebug
	if failed {
		level = slog.LevelError
	}
	if !slog.Default().Enabled(ctx, level) {
		return
	}

	sql, rows := fc()
	attrs := []any{
		"sql", clipSQL(sql),
		"rows", rows,
		"duration", time.Since(begin),
	}
	if failed {
		slog.Error("gorm query error", append(attrs, "error", err)...)
		return
	}
	slog.Debug("gorm query", attrs...)
}

// clipSQL keeps the head and tail of an oversized statement.
func clipSQL(sql string) string {
	if len(sql) <= sqlLogLimit {
		return sql
	}
	keep := (sqlLogLimit - 3) / 2
	return sql[:keep] + "..." + sql[len(sql)-keep:]
}
