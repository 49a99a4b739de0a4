package domain

import "time"

// InvoiceState is the settlement lifecycle of a hosted Lightning invoice.
type InvoiceState string

const (
	InvoicePending InvoiceState = "pending"
	InvoicePaid    InvoiceState = "paid"
	InvoiceExpired InvoiceState = "expired"
)

// Invoice is the transient value returned to a contributor: a provider-issued
// Lightning payment request for a specific amount.
type Invoice struct {
	PaymentRequest string
	PaymentHash    string
	Amount         int64 // satoshis
	CampaignID     string
}

// PendingInvoice is the settlement bookkeeping for an issued invoice. The
// settlement worker drives it from pending to a terminal state.
type PendingInvoice struct {
	PaymentHash     string
	CampaignID      string
	Amount          int64
	PaymentRequest  string
	ContributorName string
	State           InvoiceState
	CreatedAt       time.Time
	ExpiresAt       time.Time
}
