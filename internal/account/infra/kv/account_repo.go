package kv

import (
	"context"
	"strconv"

	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

// Profile and preference values are stored as plain strings, not JSON.
const (
	UsernameKey      = "username"
	EmailKey         = "email"
	LoginProviderKey = "loginProvider"

	EmailNotificationsKey = "emailNotifications"
	SMSNotificationsKey   = "smsNotifications"
	NewsletterKey         = "newsletter"
	DataSharingKey        = "dataSharing"
	ProfileVisibilityKey  = "profileVisibility"

	cartKey = "cart"
)

type AccountRepo struct {
	store kvstore.Store
}

func NewAccountRepo(store kvstore.Store) *AccountRepo {
	return &AccountRepo{store: store}
}

func (r *AccountRepo) Profile(ctx context.Context) (domain.Profile, error) {
	username, err := kvstore.GetString(ctx, r.store, UsernameKey, domain.DefaultUsername)
	if err != nil {
		return domain.Profile{}, err
	}
	email, err := kvstore.GetString(ctx, r.store, EmailKey, domain.DefaultEmail)
	if err != nil {
		return domain.Profile{}, err
	}
	provider, err := kvstore.GetString(ctx, r.store, LoginProviderKey, "")
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{Username: username, Email: email, LoginProvider: provider}, nil
}

func (r *AccountRepo) SetUsername(ctx context.Context, username string) error {
	return r.store.Set(ctx, UsernameKey, []byte(username))
}

func (r *AccountRepo) SetEmail(ctx context.Context, email string) error {
	return r.store.Set(ctx, EmailKey, []byte(email))
}

func (r *AccountRepo) Preferences(ctx context.Context) (domain.Preferences, error) {
	p := domain.DefaultPreferences()

	flags := []struct {
		key string
		dst *bool
	}{
		{EmailNotificationsKey, &p.EmailNotifications},
		{SMSNotificationsKey, &p.SMSNotifications},
		{NewsletterKey, &p.Newsletter},
		{DataSharingKey, &p.DataSharing},
	}
	for _, f := range flags {
		v, err := kvstore.GetString(ctx, r.store, f.key, "")
		if err != nil {
			return domain.Preferences{}, err
		}
		if b, err := strconv.ParseBool(v); err == nil {
			*f.dst = b
		}
	}

	vis, err := kvstore.GetString(ctx, r.store, ProfileVisibilityKey, p.ProfileVisibility)
	if err != nil {
		return domain.Preferences{}, err
	}
	p.ProfileVisibility = vis
	return p, nil
}

func (r *AccountRepo) SavePreferences(ctx context.Context, p domain.Preferences) error {
	values := map[string]string{
		EmailNotificationsKey: strconv.FormatBool(p.EmailNotifications),
		SMSNotificationsKey:   strconv.FormatBool(p.SMSNotifications),
		NewsletterKey:         strconv.FormatBool(p.Newsletter),
		DataSharingKey:        strconv.FormatBool(p.DataSharing),
		ProfileVisibilityKey:  p.ProfileVisibility,
	}
	for k, v := range values {
		if err := r.store.Set(ctx, k, []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func (r *AccountRepo) DeleteAll(ctx context.Context) error {
	keys := []string{
		UsernameKey, EmailKey, LoginProviderKey, cartKey,
		EmailNotificationsKey, SMSNotificationsKey, NewsletterKey,
		ProfileVisibilityKey, DataSharingKey,
	}
	for _, k := range keys {
		if err := r.store.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
