package notify

import (
	"context"
	"log/slog"

	"github.com/danrawss/techtrove/internal/logging"
)

// LogSender writes confirmations to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logging.OrDiscard(logger)}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "order confirmation",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
