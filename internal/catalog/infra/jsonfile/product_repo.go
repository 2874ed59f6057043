package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductRepo serves a read-only catalog file of the form
// {"products":[{"id":..,"name":..,"price":..,"image":..}]}.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func Open(path string) (*ProductRepo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*ProductRepo, error) {
	var doc struct {
		Products []struct {
			ID          any         `json:"id"`
			Name        string      `json:"name"`
			Price       json.Number `json:"price"`
			Image       string      `json:"image"`
			Description string      `json:"description"`
		} `json:"products"`
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	r := &ProductRepo{byID: make(map[string]int, len(doc.Products))}
	for i, p := range doc.Products {
		id := productID(p.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		price, err := decimal.NewFromString(p.Price.String())
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: bad price: %w", id, err)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", id)
		}
		r.byID[id] = len(r.products)
		r.products = append(r.products, domain.Product{
			ID:          id,
			Name:        p.Name,
			Price:       price,
			Image:       p.Image,
			Description: p.Description,
		})
	}
	return r, nil
}

func (r *ProductRepo) Get(_ context.Context, id string) (domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[idx], nil
}

func (r *ProductRepo) List(_ context.Context, limit int) ([]domain.Product, error) {
	n := len(r.products)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Product, n)
	copy(out, r.products[:n])
	return out, nil
}

// productID accepts numeric or string ids.
func productID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}
