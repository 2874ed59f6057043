package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be a whole number of at least %d", ErrInvalidInput, domain.MinQuantity)
)

// Service owns the cart. Every mutation reads the full cart, changes it
// and writes it back whole. Operations on a product that is not in the
// cart are no-ops, since stale references from the UI are common.
type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetCart(ctx context.Context) (domain.Cart, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Items(ctx context.Context) ([]domain.LineItem, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *Service) Add(ctx context.Context, productID, name string, unitPrice decimal.Decimal, image string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrInvalidInput
	}

	cart, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	if idx := cart.Index(productID); idx >= 0 {
		if cart.Items[idx].Quantity >= domain.MaxQuantity {
			return nil
		}
		cart.Items[idx].Quantity++
		return s.repo.Save(ctx, cart)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultName
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}

	cart.Items = append(cart.Items, domain.LineItem{
		ID:        productID,
		Name:      name,
		UnitPrice: unitPrice,
		Image:     image,
		Quantity:  domain.MinQuantity,
	})
	return s.repo.Save(ctx, cart)
}

func (s *Service) Increase(ctx context.Context, productID string) error {
	return s.update(ctx, productID, func(q int) int { return q + 1 })
}

// Decrease never removes an item; a quantity of one stays at one.
func (s *Service) Decrease(ctx context.Context, productID string) error {
	return s.update(ctx, productID, func(q int) int { return q - 1 })
}

// SetQuantity parses raw the way the quantity input does: a leading
// integer is taken and trailing junk ignored. Non-numeric or sub-one input
// is rejected with ErrInvalidQuantity and nothing changes; larger values
// are capped at the maximum.
func (s *Service) SetQuantity(ctx context.Context, productID, raw string) error {
	qty, ok := parseLeadingInt(raw)
	if !ok || qty < domain.MinQuantity {
		return ErrInvalidQuantity
	}
	return s.update(ctx, productID, func(int) int { return qty })
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	idx := cart.Index(productID)
	if idx < 0 {
		return nil
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.repo.Save(ctx, cart)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *Service) Breakdown(ctx context.Context) (pricing.Breakdown, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return pricing.ComputeBreakdown(cart.Items), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

// update applies fn to the item's quantity, clamps the result and writes
// only when something changed.
func (s *Service) update(ctx context.Context, productID string, fn func(int) int) error {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	idx := cart.Index(productID)
	if idx < 0 {
		return nil
	}

	cur := cart.Items[idx].Quantity
	next := domain.ClampQuantity(fn(cur))
	if next == cur {
		return nil
	}
	cart.Items[idx].Quantity = next
	return s.repo.Save(ctx, cart)
}

func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow: only large positive values matter, they get capped
		if s[0] == '-' {
			return 0, false
		}
		return domain.MaxQuantity, true
	}
	return n, true
}
