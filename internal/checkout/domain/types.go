package domain

import (
	notificationdomain "github.com/dwikikusuma/storefront/internal/notification/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

// CardDetails is only checked for shape and then dropped; it is never
// stored.
type CardDetails struct {
	Number         string `json:"cardNumber"`
	Expiry         string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	Name           string `json:"cardName"`
	BillingAddress string `json:"billingAddress"`
}

type PlaceOrderRequest struct {
	Method string      `json:"paymentMethod"`
	Card   CardDetails `json:"card"`
}

type Receipt struct {
	Order        orderdomain.Order                     `json:"order"`
	Confirmation notificationdomain.ConfirmationRecord `json:"confirmation"`
}
