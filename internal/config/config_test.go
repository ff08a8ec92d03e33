package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := fromViper(newViper())
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.CheckoutTxTimeout != 5*time.Second {
		t.Fatalf("unexpected checkout timeout %s", cfg.CheckoutTxTimeout)
	}
	if cfg.Notify.Driver != "log" || cfg.Notify.MaxAttempts != 3 {
		t.Fatalf("unexpected notify config %+v", cfg.Notify)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CHECKOUT_TX_TIMEOUT", "750ms")
	t.Setenv("NOTIFY_DRIVER", "KAFKA")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := fromViper(newViper())
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.CheckoutTxTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected checkout timeout %s", cfg.CheckoutTxTimeout)
	}
	if cfg.Notify.Driver != "kafka" {
		t.Fatalf("expected lowercased driver, got %q", cfg.Notify.Driver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}
