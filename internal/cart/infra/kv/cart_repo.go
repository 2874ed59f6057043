package kv

import (
	"context"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

const CartKey = "cart"

type CartRepo struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewCartRepo(store kvstore.Store, log *slog.Logger) *CartRepo {
	if log == nil {
		log = slog.Default()
	}
	return &CartRepo{store: store, log: log}
}

// Load never fails on bad stored data: an unreadable value is logged and
// read as an empty cart.
func (r *CartRepo) Load(ctx context.Context) (domain.Cart, error) {
	raw, ok, err := r.store.Get(ctx, CartKey)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, nil
	}

	items, err := domain.DecodeItems(raw)
	if err != nil {
		r.log.Warn("corrupt cart in store, starting empty",
			slog.String("key", CartKey), slog.Any("err", err))
		return domain.Cart{}, nil
	}
	return domain.Cart{Items: items}, nil
}

func (r *CartRepo) Save(ctx context.Context, cart domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return kvstore.SetJSON(ctx, r.store, CartKey, items)
}

func (r *CartRepo) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, CartKey)
}
