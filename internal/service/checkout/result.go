package checkout

import (
	"fmt"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/shopspring/decimal"
)

// State is a step of the checkout flow.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateCommitting State = "committing"
	StateNotifying  State = "notifying"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Outcome describes a checkout that committed, or had nothing to commit.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomeNotificationFailed Outcome = "notification_failed"
	OutcomeEmptyCart          Outcome = "empty_cart"
)

type Result struct {
	Outcome     Outcome
	OrderID     string
	Total       decimal.Decimal
	Lines       []domain.CartLine
	OrderTime   time.Time
	RedirectURL string

	// NotifyErr is set when Outcome is OutcomeNotificationFailed and wraps
	// domain.ErrNotificationFailed.
	NotifyErr error
}

// Committed reports whether an order was written.
func (r *Result) Committed() bool {
	return r != nil && r.OrderID != "" && r.Outcome != OutcomeEmptyCart
}

// StepError is returned when checkout fails before anything is committed.
type StepError struct {
	Step State
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("checkout %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
