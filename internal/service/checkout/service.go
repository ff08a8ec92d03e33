package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/danrawss/techtrove/internal/metrics"
	"github.com/danrawss/techtrove/internal/pricing"
	checkoutrepo "github.com/danrawss/techtrove/internal/repository/checkout"
	"github.com/shopspring/decimal"
)

// SuccessRedirect is where the storefront sends the shopper after a
// committed checkout.
const SuccessRedirect = "/checkout_success"

const notifyTimeout = 30 * time.Second

type sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type orderReader interface {
	ListByOrderID(ctx context.Context, userID, orderID string) ([]domain.Order, error)
}

type Service struct {
	runner  checkoutrepo.Runner
	orders  orderReader
	sender  sender
	counts  invalidator
	metrics *metrics.Metrics
	logger  *slog.Logger

	now        func() time.Time
	newOrderID func() (string, error)
}

func New(runner checkoutrepo.Runner, orders orderReader, sender sender, counts invalidator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		runner:     runner,
		orders:     orders,
		sender:     sender,
		counts:     counts,
		metrics:    m,
		logger:     logging.OrDiscard(logger),
		now:        time.Now,
		newOrderID: randomOrderID,
	}
}

// Checkout turns the user's cart into an order.
//
// A non-nil error means nothing was committed; it is always a *StepError.
// Once the order is committed the error is nil and Result.Outcome tells
// whether the confirmation went out.
func (s *Service) Checkout(ctx context.Context, userID string, shipping domain.ShippingInfo) (*Result, error) {
	res, err := s.checkout(ctx, userID, shipping)
	if err != nil {
		s.metrics.CheckoutOutcome(string(StateFailed))
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.logger.WarnContext(ctx, "checkout failed",
				slog.String("user_id", userID),
				slog.String("step", string(stepErr.Step)),
				slog.Any("error", stepErr.Err),
			)
		}
		return nil, err
	}
	s.metrics.CheckoutOutcome(string(res.Outcome))
	return res, nil
}

func (s *Service) checkout(ctx context.Context, userID string, shipping domain.ShippingInfo) (*Result, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &StepError{Step: StateIdle, Err: domain.ErrUnauthorized}
	}

	shipping = shipping.Normalize()
	if missing := shipping.MissingFields(); len(missing) > 0 {
		return nil, &StepError{
			Step: StateValidating,
			Err:  fmt.Errorf("%w: all shipping fields are required (missing %s)", domain.ErrInvalidInput, strings.Join(missing, ", ")),
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &StepError{Step: StateValidating, Err: err}
	}

	orderID, err := s.newOrderID()
	if err != nil {
		return nil, &StepError{Step: StateCommitting, Err: fmt.Errorf("%w: order id: %v", domain.ErrPersistence, err)}
	}
	batch := domain.OrderBatch{
		OrderID:   orderID,
		UserID:    userID,
		Shipping:  shipping,
		OrderTime: s.now().UTC(),
	}

	err = s.runner.InUserTx(ctx, userID, func(ctx context.Context, tx checkoutrepo.Tx) error {
		lines, err := tx.SnapshotCart(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		batch.Lines = lines
		batch.GrandTotal = pricing.Total(lines)
		if err := tx.ClearCart(ctx, lines); err != nil {
			return err
		}
		return tx.WriteOrder(ctx, batch)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) && !errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return nil, &StepError{Step: StateCommitting, Err: err}
	}

	if len(batch.Lines) == 0 {
		return &Result{Outcome: OutcomeEmptyCart, Total: decimal.Zero}, nil
	}

	s.invalidate(context.WithoutCancel(ctx), userID)
	s.logger.InfoContext(ctx, "order committed",
		slog.String("user_id", userID),
		slog.String("order_id", batch.OrderID),
		slog.Int("lines", len(batch.Lines)),
		slog.String("total", batch.GrandTotal.StringFixed(2)),
	)

	res := &Result{
		Outcome:     OutcomeCompleted,
		OrderID:     batch.OrderID,
		Total:       batch.GrandTotal,
		Lines:       batch.Lines,
		OrderTime:   batch.OrderTime,
		RedirectURL: SuccessRedirect,
	}

	if shipping.Email == "" {
		s.logger.InfoContext(ctx, "no email given, confirmation skipped", slog.String("order_id", batch.OrderID))
		return res, nil
	}

	if err := s.notify(ctx, batch); err != nil {
		s.metrics.NotificationFailed()
		s.logger.ErrorContext(ctx, "order confirmation failed",
			slog.String("order_id", batch.OrderID),
			slog.Any("error", err),
		)
		res.Outcome = OutcomeNotificationFailed
		res.NotifyErr = fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return res, nil
}

// notify runs detached from the request so a client hanging up after the
// commit does not cancel the confirmation.
func (s *Service) notify(ctx context.Context, batch domain.OrderBatch) error {
	if s.sender == nil {
		return errors.New("no notification sender configured")
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	subject, body := Confirmation(batch)
	return s.sender.Send(ctx, batch.Shipping.Email, subject, body)
}

// Order returns the rows of one of the user's orders.
func (s *Service) Order(ctx context.Context, userID, orderID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id required", domain.ErrInvalidInput)
	}
	rows, err := s.orders.ListByOrderID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: read order: %v", domain.ErrPersistence, err)
	}
	return rows, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.counts == nil {
		return
	}
	if err := s.counts.Invalidate(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "count cache invalidate failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}

func randomOrderID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
