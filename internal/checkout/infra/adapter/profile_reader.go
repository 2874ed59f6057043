package adapter

import (
	"context"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
)

type AccountProfileReader struct {
	svc *accountapp.Service
}

func NewAccountProfileReader(svc *accountapp.Service) *AccountProfileReader {
	return &AccountProfileReader{svc: svc}
}

func (r *AccountProfileReader) Contact(ctx context.Context) (string, string, error) {
	p, err := r.svc.Profile(ctx)
	if err != nil {
		return "", "", err
	}
	return p.Email, p.Username, nil
}
