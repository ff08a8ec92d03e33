// Package notify delivers order confirmations. The checkout flow only sees
// the Sender interface; the transport is picked from NOTIFY_DRIVER.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danrawss/techtrove/internal/config"
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Closer is implemented by senders holding network resources.
type Closer interface {
	Close() error
}

// FromConfig builds the configured sender wrapped in bounded retries.
func FromConfig(cfg config.NotifyConfig, logger *slog.Logger) (Sender, error) {
	var base Sender
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "log":
		base = NewLogSender(logger)
	case "smtp":
		base = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	case "kafka":
		if strings.TrimSpace(cfg.KafkaBroker) == "" {
			return nil, fmt.Errorf("notify driver kafka requires KAFKA_BROKERS")
		}
		base = NewKafkaSender(cfg.KafkaBroker, cfg.KafkaTopic)
	default:
		return nil, fmt.Errorf("unknown notify driver %q", cfg.Driver)
	}
	return NewRetrying(base, cfg.MaxAttempts, logger), nil
}
