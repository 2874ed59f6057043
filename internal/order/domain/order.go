package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

type Status string

// StatusOrderPlaced is the only state an order reaches here; anything
// after placement belongs to fulfillment.
const StatusOrderPlaced Status = "Order Placed"

type PaymentMethod string

const (
	PaymentCredit      PaymentMethod = "credit"
	PaymentPayPal      PaymentMethod = "paypal"
	PaymentApplePay    PaymentMethod = "apple"
	PaymentGooglePay   PaymentMethod = "google"
	PaymentCashOnDeliv PaymentMethod = "cod"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCredit:      "Credit/Debit Card",
	PaymentPayPal:      "PayPal",
	PaymentApplePay:    "Apple Pay",
	PaymentGooglePay:   "Google Pay",
	PaymentCashOnDeliv: "Cash on Delivery",
}

// ParsePaymentMethod accepts a method code or its label. Anything else
// falls back to card payment; known reports whether the input matched.
func ParsePaymentMethod(v string) (m PaymentMethod, known bool) {
	v = strings.TrimSpace(v)
	code := PaymentMethod(strings.ToLower(v))
	if _, ok := paymentLabels[code]; ok {
		return code, true
	}
	for code, label := range paymentLabels {
		if strings.EqualFold(label, v) {
			return code, true
		}
	}
	return PaymentCredit, false
}

func (m PaymentMethod) Label() string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}
	return paymentLabels[PaymentCredit]
}

// Deferred reports whether the customer pays at delivery rather than at
// checkout.
func (m PaymentMethod) Deferred() bool {
	return m == PaymentCashOnDeliv
}

// Order is an immutable snapshot of a checked-out cart. Never mutate a
// committed order; Items is a private copy of the cart contents.
type Order struct {
	ID            string
	Items         []cartdomain.LineItem
	Subtotal      decimal.Decimal
	Shipping      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	OrderDate     time.Time
	Status        Status
}

func (o Order) ItemCount() int {
	return cartdomain.Cart{Items: o.Items}.ItemCount()
}
