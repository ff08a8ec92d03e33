package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/danrawss/techtrove/internal/logging"
)

// Retrying retries a Sender with exponential backoff, at most maxAttempts
// times in total.
type Retrying struct {
	next        Sender
	maxAttempts uint
	newBackOff  func() backoff.BackOff
	logger      *slog.Logger
}

func NewRetrying(next Sender, maxAttempts int, logger *slog.Logger) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrying{
		next:        next,
		maxAttempts: uint(maxAttempts),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		logger: logging.OrDiscard(logger),
	}
}

func (r *Retrying) Send(ctx context.Context, to, subject, body string) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := r.next.Send(ctx, to, subject, body)
		if err != nil {
			r.logger.WarnContext(ctx, "notification attempt failed",
				slog.Int("attempt", attempt),
				slog.String("to", to),
				slog.Any("error", err),
			)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(r.newBackOff()), backoff.WithMaxTries(r.maxAttempts))
	return err
}

// Close closes the wrapped sender when it holds resources.
func (r *Retrying) Close() error {
	if c, ok := r.next.(Closer); ok {
		return c.Close()
	}
	return nil
}
