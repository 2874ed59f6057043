package app

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

// validateCard applies the payment form rules. Card numbers may contain
// spaces as typed; they are ignored.
func validateCard(c domain.CardDetails) error {
	number := strings.ReplaceAll(c.Number, " ", "")
	if len(number) < 16 || !digitsOnly(number) {
		return fieldErr("card number", "enter a valid card number")
	}
	if len(strings.TrimSpace(c.Expiry)) < 5 {
		return fieldErr("expiry date", "enter a valid expiry date")
	}
	if len(c.CVV) < 3 || !digitsOnly(c.CVV) {
		return fieldErr("cvv", "enter a valid CVV")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fieldErr("cardholder name", "enter cardholder name")
	}
	if strings.TrimSpace(c.BillingAddress) == "" {
		return fieldErr("billing address", "enter billing address")
	}
	return nil
}

func fieldErr(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, msg)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
