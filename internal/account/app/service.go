package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/dwikikusuma/storefront/internal/account/domain"
)

var ErrInvalidInput = errors.New("invalid input")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	repo AccountRepo
}

func NewService(repo AccountRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Profile(ctx context.Context) (domain.Profile, error) {
	return s.repo.Profile(ctx)
}

func (s *Service) UpdateUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidInput
	}
	return s.repo.SetUsername(ctx, username)
}

func (s *Service) UpdateEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	return s.repo.SetEmail(ctx, email)
}

func (s *Service) Preferences(ctx context.Context) (domain.Preferences, error) {
	return s.repo.Preferences(ctx)
}

func (s *Service) SavePreferences(ctx context.Context, p domain.Preferences) error {
	p.ProfileVisibility = strings.TrimSpace(p.ProfileVisibility)
	if p.ProfileVisibility == "" {
		p.ProfileVisibility = domain.DefaultPreferences().ProfileVisibility
	}
	return s.repo.SavePreferences(ctx, p)
}

func (s *Service) DeleteAccount(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
