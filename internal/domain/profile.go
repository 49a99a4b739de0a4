package domain

import "time"

// WalletType enumerates supported wallet arrangements.
type WalletType string

const (
	// WalletInternal is a hosted wallet provisioned through the payment provider.
	WalletInternal WalletType = "internal"
)

// Profile holds the payment identity attached to a user. Wallet provisioning
// writes it once via upsert; everything else reads it.
type Profile struct {
	UserID       string
	WalletType   WalletType
	PaymentAlias string // <user-id>@<platform-domain>
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaymentAliasFor derives the deterministic payment alias for a user, so a
// repeated provisioning call always converges on the same value.
func PaymentAliasFor(userID, platformDomain string) string {
	return userID + "@" + platformDomain
}
