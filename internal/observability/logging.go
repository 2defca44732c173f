// Package observability holds the portal's logging, metrics and tracing helpers.
package observability

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var base atomic.Pointer[slog.Logger]

func init() {
	base.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// InitLogging routes repository and event logs through l, normally the
// request-aware logger built by middleware.InitLogger.
func InitLogging(l *slog.Logger) {
	if l != nil {
		base.Store(l)
	}
}

// RepoLogger tags log lines with the table a repository writes.
type RepoLogger struct {
	table string
}

func NewRepoLogger(table string) *RepoLogger {
	return &RepoLogger{table: table}
}

func (r *RepoLogger) emit(ctx context.Context, lvl slog.Level, msg, op string, attrs []slog.Attr) {
	attrs = append([]slog.Attr{slog.String("table", r.table), slog.String("op", op)}, attrs...)
	base.Load().LogAttrs(ctx, lvl, msg, attrs...)
}

// Wrote records a committed write.
func (r *RepoLogger) Wrote(ctx context.Context, op string, attrs ...slog.Attr) {
	r.emit(ctx, slog.LevelInfo, "rows written", op, attrs)
}

// Purged records a page purge. Purges happen on every form GET, so they log at debug.
func (r *RepoLogger) Purged(ctx context.Context, page int, userID uint) {
	r.emit(ctx, slog.LevelDebug, "page purged", "purge",
		[]slog.Attr{slog.Int("page", page), slog.Uint64("user_id", uint64(userID))})
}

func (r *RepoLogger) Failed(ctx context.Context, op string, err error) {
	r.emit(ctx, slog.LevelError, "repository error", op, []slog.Attr{slog.String("error", err.Error())})
}

// LogEvent writes one application lifecycle event taken off the event bus.
func LogEvent(ctx context.Context, channel, event string, attrs ...slog.Attr) {
	attrs = append([]slog.Attr{slog.String("channel", channel), slog.String("event", event)}, attrs...)
	base.Load().LogAttrs(ctx, slog.LevelInfo, "application event", attrs...)
}
