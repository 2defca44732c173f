package mail

import (
	"context"
	"log/slog"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
)

// LogMailer writes messages to the application log instead of sending them.
// It is the development default.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer() *LogMailer {
	return &LogMailer{logger: middleware.Logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "outbound email",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
