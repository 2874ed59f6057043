package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/account/domain"
)

type AccountRepo interface {
	Profile(ctx context.Context) (domain.Profile, error)
	SetUsername(ctx context.Context, username string) error
	SetEmail(ctx context.Context, email string) error
	Preferences(ctx context.Context) (domain.Preferences, error)
	SavePreferences(ctx context.Context, p domain.Preferences) error
	// DeleteAll removes profile, cart and preference keys. Order history
	// and sent confirmations stay.
	DeleteAll(ctx context.Context) error
}
