package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context) (cartdomain.Cart, error) {
	cart, err := r.svc.GetCart(ctx)
	if err != nil {
		return cartdomain.Cart{}, err
	}
	return cart.Clone(), nil
}

func (r *CartServiceReader) Clear(ctx context.Context) error {
	return r.svc.Clear(ctx)
}
