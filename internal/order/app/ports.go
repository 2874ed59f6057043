package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

// OrderRepo only ever appends; committed orders are never edited or
// removed.
type OrderRepo interface {
	Append(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}

type IDGenerator interface {
	NewID() string
}

// IDObserver is implemented by generators that must stay ahead of ids
// already in the stored history.
type IDObserver interface {
	Seen(id string)
}
