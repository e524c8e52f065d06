package domain

import "time"

// PaymentStatus represents the status of a payment record
type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentPending  PaymentStatus = "pending"
	PaymentRejected PaymentStatus = "rejected"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment represents a charge against the external payment gateway,
// linked to a reservation. A reservation may accumulate several payment
// records over its lifetime, but at most one non-refunded charge is active.
type Payment struct {
	ID            string
	ReservationID string

	Amount   float64
	Currency string
	Status   PaymentStatus

	// ProviderPaymentID is the external gateway's identifier.
	// Required for any later refund.
	ProviderPaymentID string

	// IdempotencyKey is the per-attempt key the charge was issued with.
	// Kept for reconciliation: the provider deduplicates by this key.
	IdempotencyKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRefundable returns true if the payment still holds money that can be returned
func (p *Payment) IsRefundable() bool {
	return p.Status == PaymentApproved || p.Status == PaymentPending
}
