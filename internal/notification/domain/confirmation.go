package domain

import "time"

const StatusSent = "sent"

// ConfirmationRecord is the simulated confirmation message for one order.
// OrderID refers back to the order; the record does not own it.
type ConfirmationRecord struct {
	OrderID string    `json:"orderId"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sentAt"`
	Status  string    `json:"status"`
}
