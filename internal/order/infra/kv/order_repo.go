package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

const OrdersKey = "orders"

type OrderRepo struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewOrderRepo(store kvstore.Store, log *slog.Logger) *OrderRepo {
	if log == nil {
		log = slog.Default()
	}
	return &OrderRepo{store: store, log: log}
}

// Append rewrites the history with order added at the end. Entries that
// are already stored are carried over byte for byte. A stored value that
// is not a list is discarded.
func (r *OrderRepo) Append(ctx context.Context, order domain.Order) error {
	entries, err := r.entries(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	entries = append(entries, b)
	return kvstore.SetJSON(ctx, r.store, OrdersKey, entries)
}

// List decodes the stored history. Entries that cannot be decoded are
// skipped; a legacy value holding a single order object is read as a
// one-order history.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	raw, ok, err := r.store.Get(ctx, OrdersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Order{}, nil
	}

	var entries []json.RawMessage
	if err := kvstore.DecodeJSON(OrdersKey, raw, &entries); err != nil {
		if o, ok := legacyOrder(raw); ok {
			return []domain.Order{o}, nil
		}
		r.log.Warn("corrupt order history in store, reading as empty",
			slog.String("key", OrdersKey), slog.Any("err", err))
		return []domain.Order{}, nil
	}

	orders := make([]domain.Order, 0, len(entries))
	for i, e := range entries {
		var o domain.Order
		if err := json.Unmarshal(e, &o); err != nil {
			r.log.Warn("skipping unreadable order",
				slog.String("key", OrdersKey), slog.Int("index", i), slog.Any("err", err))
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepo) entries(ctx context.Context) ([]json.RawMessage, error) {
	raw, ok, err := r.store.Get(ctx, OrdersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := kvstore.DecodeJSON(OrdersKey, raw, &entries); err != nil {
		r.log.Warn("discarding non-list order history",
			slog.String("key", OrdersKey), slog.Any("err", err))
		return nil, nil
	}
	return entries, nil
}

func legacyOrder(raw []byte) (domain.Order, bool) {
	var probe struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.OrderID == "" {
		return domain.Order{}, false
	}
	var o domain.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return domain.Order{}, false
	}
	return o, true
}
