package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

// Ledger turns carts into orders and keeps the order history.
type Ledger struct {
	repo OrderRepo
	ids  IDGenerator
	now  func() time.Time
}

func NewLedger(repo OrderRepo, ids IDGenerator, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = NewMonotonicIDs(now)
	}
	return &Ledger{
		repo: repo,
		ids:  ids,
		now:  now,
	}
}

// Commit snapshots cart into a new order and appends it to the history.
// An empty cart fails with ErrEmptyCart and appends nothing.
func (l *Ledger) Commit(ctx context.Context, cart cartdomain.Cart, method domain.PaymentMethod) (domain.Order, error) {
	if cart.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	if obs, ok := l.ids.(IDObserver); ok {
		history, err := l.repo.List(ctx)
		if err != nil {
			return domain.Order{}, fmt.Errorf("read order history: %w", err)
		}
		for _, o := range history {
			obs.Seen(o.ID)
		}
	}

	snapshot := cart.Clone()
	b := pricing.ComputeBreakdown(snapshot.Items)

	order := domain.Order{
		ID:            l.ids.NewID(),
		Items:         snapshot.Items,
		Subtotal:      b.Subtotal,
		Shipping:      b.Shipping,
		Tax:           b.Tax,
		Total:         b.Total,
		PaymentMethod: method,
		// stored dates carry millisecond precision
		OrderDate: l.now().UTC().Truncate(time.Millisecond),
		Status:    domain.StatusOrderPlaced,
	}

	if err := l.repo.Append(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("append order %s: %w", order.ID, err)
	}
	return order, nil
}

// List returns every order, newest first. Orders without a date sort last.
func (l *Ledger) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) > sortKey(sorted[j])
	})
	return sorted, nil
}

func (l *Ledger) Get(ctx context.Context, orderID string) (domain.Order, error) {
	orders, err := l.repo.List(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// sortKey treats a missing date as the epoch.
func sortKey(o domain.Order) int64 {
	if o.OrderDate.IsZero() {
		return 0
	}
	return o.OrderDate.UnixMilli()
}
