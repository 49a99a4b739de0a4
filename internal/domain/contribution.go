package domain

import "time"

// PaymentMethod enumerates how a contribution was paid.
type PaymentMethod string

const (
	PaymentMobileMoney PaymentMethod = "mobile-money"
	PaymentLightning   PaymentMethod = "lightning"
	PaymentOnChain     PaymentMethod = "on-chain"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMobileMoney, PaymentLightning, PaymentOnChain:
		return true
	}
	return false
}

// Contribution is a single recorded payment toward a campaign's goal.
// Immutable once created.
type Contribution struct {
	ID              string
	CampaignID      string
	ContributorName string // blank means anonymous
	Amount          int64  // satoshis, always > 0
	PaymentMethod   PaymentMethod
	CountryCode     string // best-effort ISO code, may be blank
	PaymentHash     string // set for lightning settlements, dedup key
	CreatedAt       time.Time
}

// MockSatsPerKES is an illustrative display-only conversion rate. It is not
// an exchange rate and must never feed settlement math.
const MockSatsPerKES int64 = 12

// SatsToKES renders a satoshi amount as its illustrative KES display figure.
func SatsToKES(sats int64) int64 {
	return sats / MockSatsPerKES
}

// KESToSats renders a KES display amount in satoshis.
func KESToSats(kes int64) int64 {
	return kes * MockSatsPerKES
}
