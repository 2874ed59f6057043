package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	repo ProductRepo

	maxConcurrent int
}

func NewService(repo ProductRepo, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		repo:          repo,
		maxConcurrent: maxConcurrent,
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListProducts returns the catalog in file order; limit <= 0 means all.
func (s *Service) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit < 0 {
		limit = 0
	}
	return s.repo.List(ctx, limit)
}

// Resolve looks up several products at once and returns them in the
// order of ids. The first failed lookup cancels the rest.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range ids {
		g.Go(func() error {
			p, err := s.GetProduct(ctx, ids[idx])
			if err != nil {
				return fmt.Errorf("failed to get product %q: %w", ids[idx], err)
			}
			out[idx] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
