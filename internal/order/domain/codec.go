package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

// DateLayout matches the ISO strings browsers produce with toISOString.
const DateLayout = "2006-01-02T15:04:05.000Z"

type orderJSON struct {
	OrderID       string                `json:"orderId"`
	Items         []cartdomain.LineItem `json:"items"`
	Subtotal      json.Number           `json:"subtotal"`
	Shipping      json.Number           `json:"shipping"`
	Tax           json.Number           `json:"tax"`
	Total         json.Number           `json:"total"`
	PaymentMethod string                `json:"paymentMethod"`
	OrderDate     string                `json:"orderDate,omitempty"`
	Status        string                `json:"status"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []cartdomain.LineItem{}
	}
	var date string
	if !o.OrderDate.IsZero() {
		date = o.OrderDate.UTC().Format(DateLayout)
	}
	return json.Marshal(orderJSON{
		OrderID:       o.ID,
		Items:         items,
		Subtotal:      json.Number(o.Subtotal.String()),
		Shipping:      json.Number(o.Shipping.String()),
		Tax:           json.Number(o.Tax.String()),
		Total:         json.Number(o.Total.String()),
		PaymentMethod: o.PaymentMethod.Label(),
		OrderDate:     date,
		Status:        string(o.Status),
	})
}

// UnmarshalJSON is lenient: bad amounts read as zero, an unparsable date
// reads as the zero time and a missing status as order placed.
func (o *Order) UnmarshalJSON(b []byte) error {
	var raw struct {
		OrderID       string            `json:"orderId"`
		Items         []json.RawMessage `json:"items"`
		Subtotal      any               `json:"subtotal"`
		Shipping      any               `json:"shipping"`
		Tax           any               `json:"tax"`
		Total         any               `json:"total"`
		PaymentMethod string            `json:"paymentMethod"`
		OrderDate     string            `json:"orderDate"`
		Status        string            `json:"status"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	items := make([]cartdomain.LineItem, 0, len(raw.Items))
	for _, r := range raw.Items {
		var it cartdomain.LineItem
		if err := json.Unmarshal(r, &it); err != nil {
			continue
		}
		items = append(items, it)
	}

	method, _ := ParsePaymentMethod(raw.PaymentMethod)
	status := Status(strings.TrimSpace(raw.Status))
	if status == "" {
		status = StatusOrderPlaced
	}

	*o = Order{
		ID:            raw.OrderID,
		Items:         items,
		Subtotal:      amount(raw.Subtotal),
		Shipping:      amount(raw.Shipping),
		Tax:           amount(raw.Tax),
		Total:         amount(raw.Total),
		PaymentMethod: method,
		OrderDate:     parseDate(raw.OrderDate),
		Status:        status,
	}
	return nil
}

func amount(v any) decimal.Decimal {
	switch t := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(t)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
