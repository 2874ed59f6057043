package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotSequence = errors.New("stored cart is not a sequence")

type lineItemJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Quantity int         `json:"quantity"`
}

func (i LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ID:       i.ID,
		Name:     i.Name,
		Price:    json.Number(i.UnitPrice.String()),
		Image:    i.Image,
		Quantity: i.Quantity,
	})
}

// UnmarshalJSON accepts the loosely typed shapes older storefront pages
// wrote and coerces them through the same rules as DecodeItems.
func (i *LineItem) UnmarshalJSON(b []byte) error {
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	item, ok := coerceItem(fields)
	if !ok {
		return errors.New("line item has no id")
	}
	*i = item
	return nil
}

// DecodeItems turns a stored cart value into strict line items. It fails
// only when raw is not a JSON array; entries that are not objects or lack
// an id are dropped, and repeated ids are merged into their first
// position so the one-item-per-id rule holds after any load.
func DecodeItems(raw []byte) ([]LineItem, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrNotSequence
	}

	items := make([]LineItem, 0, len(entries))
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		fields, err := decodeObject(e)
		if err != nil {
			continue
		}
		it, ok := coerceItem(fields)
		if !ok {
			continue
		}
		if idx, seen := pos[it.ID]; seen {
			items[idx].Quantity = ClampQuantity(items[idx].Quantity + it.Quantity)
			continue
		}
		pos[it.ID] = len(items)
		items = append(items, it)
	}
	return items, nil
}

func decodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("line item is null")
	}
	return fields, nil
}

func coerceItem(f map[string]any) (LineItem, bool) {
	id := coerceID(f["id"])
	if id == "" {
		return LineItem{}, false
	}
	image, _ := f["image"].(string)

	return LineItem{
		ID:        id,
		Name:      coerceName(f["name"]),
		UnitPrice: coercePrice(f["price"]),
		Image:     image,
		Quantity:  coerceQuantity(f["quantity"]),
	}, true
}

func coerceID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}

func coerceName(v any) string {
	var name string
	switch t := v.(type) {
	case string:
		name = t
	case map[string]any:
		if s, ok := t["textContent"].(string); ok {
			name = s
		} else if s, ok := t["innerText"].(string); ok {
			name = s
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

// coercePrice maps anything that is not a non-negative number to zero.
func coercePrice(v any) decimal.Decimal {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// coerceQuantity treats a missing or unusable quantity as one item.
func coerceQuantity(v any) int {
	var q int
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			q = clampInt64(n)
		} else if f, err := t.Float64(); err == nil && !math.IsNaN(f) {
			q = clampInt64(int64(math.Trunc(math.Max(math.Min(f, MaxQuantity), 0))))
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			q = clampInt64(int64(n))
		}
	}
	if q == 0 {
		return MinQuantity
	}
	return ClampQuantity(q)
}

func clampInt64(n int64) int {
	if n > MaxQuantity {
		return MaxQuantity
	}
	if n < 0 {
		return 0
	}
	return int(n)
}
