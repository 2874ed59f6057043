package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/notification/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

const DefaultStoreName = "TechVault"

// Service stands in for the email boundary: it renders the confirmation
// and appends it to the outbox. Nothing is delivered.
type Service struct {
	repo      OutboxRepo
	storeName string
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Service)

func WithStoreName(name string) Option {
	return func(s *Service) {
		if strings.TrimSpace(name) != "" {
			s.storeName = name
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(repo OutboxRepo, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		storeName: DefaultStoreName,
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Record(ctx context.Context, order orderdomain.Order, destination, username string) (domain.ConfirmationRecord, error) {
	body, err := renderBody(order, username, s.storeName)
	if err != nil {
		return domain.ConfirmationRecord{}, fmt.Errorf("render confirmation for %s: %w", order.ID, err)
	}

	rec := domain.ConfirmationRecord{
		OrderID: order.ID,
		To:      destination,
		Subject: subject(order),
		Body:    body,
		SentAt:  s.now().UTC().Truncate(time.Millisecond),
		Status:  domain.StatusSent,
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return domain.ConfirmationRecord{}, fmt.Errorf("append confirmation for %s: %w", order.ID, err)
	}

	s.log.Info("order confirmation recorded",
		slog.String("to", rec.To),
		slog.String("subject", rec.Subject),
		slog.String("order_id", rec.OrderID),
		slog.Time("sent_at", rec.SentAt))
	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]domain.ConfirmationRecord, error) {
	return s.repo.List(ctx)
}

// ListFor returns the records sent to destination, oldest first.
func (s *Service) ListFor(ctx context.Context, destination string) ([]domain.ConfirmationRecord, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ConfirmationRecord, 0, len(all))
	for _, rec := range all {
		if strings.EqualFold(rec.To, destination) {
			out = append(out, rec)
		}
	}
	return out, nil
}
