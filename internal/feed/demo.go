package feed

import (
	"time"

	"crowdpay/internal/domain"
)

// Canned campaigns shown on the landing page. Their contribution history is
// fixed; nothing is persisted and no live subscription is made for them.
var demoCampaigns = []domain.Campaign{
	{
		ID:          "demo-merchant",
		Title:       "Mama Njeri's Grocery Expansion",
		Description: "Help stock the new shelf space at the Kawangware stall.",
		GoalAmount:  250_000,
		Mode:        domain.CampaignModeMerchant,
		Category:    domain.CategoryBusiness,
		Slug:        "demo-merchant",
		ThemeColor:  "#F7931A",
		IsPublic:    true,
		CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	},
	{
		ID:          "demo-event",
		Title:       "Umoja Primary Sports Day",
		Description: "Kit, transport and lunch for forty pupils.",
		GoalAmount:  180_000,
		Mode:        domain.CampaignModeEvent,
		Category:    domain.CategorySports,
		Slug:        "demo-event",
		ThemeColor:  "#2563EB",
		IsPublic:    true,
		CreatedAt:   time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC),
	},
	{
		ID:          "demo-activism",
		Title:       "Clean Water for Kibera",
		Description: "Community borehole maintenance fund.",
		GoalAmount:  500_000,
		Mode:        domain.CampaignModeActivism,
		Category:    domain.CategoryCommunity,
		Slug:        "demo-activism",
		ThemeColor:  "#16A34A",
		IsPublic:    true,
		CreatedAt:   time.Date(2025, 2, 20, 8, 30, 0, 0, time.UTC),
	},
}

var demoContributions = []domain.Contribution{
	{ID: "demo-c1", CampaignID: "demo-merchant", ContributorName: "Wanjiku", Amount: 36_000, PaymentMethod: domain.PaymentMobileMoney, CountryCode: "KE", CreatedAt: time.Date(2025, 3, 2, 10, 15, 0, 0, time.UTC)},
	{ID: "demo-c2", CampaignID: "demo-merchant", ContributorName: "", Amount: 12_000, PaymentMethod: domain.PaymentLightning, CreatedAt: time.Date(2025, 3, 3, 18, 5, 0, 0, time.UTC)},
	{ID: "demo-c3", CampaignID: "demo-merchant", ContributorName: "Otieno", Amount: 60_000, PaymentMethod: domain.PaymentLightning, CountryCode: "KE", CreatedAt: time.Date(2025, 3, 5, 7, 45, 0, 0, time.UTC)},
	{ID: "demo-c4", CampaignID: "demo-event", ContributorName: "Akinyi", Amount: 24_000, PaymentMethod: domain.PaymentMobileMoney, CountryCode: "KE", CreatedAt: time.Date(2025, 3, 9, 11, 0, 0, 0, time.UTC)},
	{ID: "demo-c5", CampaignID: "demo-event", ContributorName: "Baraka", Amount: 48_000, PaymentMethod: domain.PaymentOnChain, CreatedAt: time.Date(2025, 3, 10, 16, 30, 0, 0, time.UTC)},
	{ID: "demo-c6", CampaignID: "demo-activism", ContributorName: "", Amount: 120_000, PaymentMethod: domain.PaymentLightning, CreatedAt: time.Date(2025, 2, 22, 9, 10, 0, 0, time.UTC)},
	{ID: "demo-c7", CampaignID: "demo-activism", ContributorName: "Njoroge", Amount: 84_000, PaymentMethod: domain.PaymentMobileMoney, CountryCode: "KE", CreatedAt: time.Date(2025, 2, 25, 14, 20, 0, 0, time.UTC)},
}

// DemoCampaign returns a canned campaign by id or slug.
func DemoCampaign(ref string) (*domain.Campaign, bool) {
	for i := range demoCampaigns {
		if demoCampaigns[i].ID == ref || demoCampaigns[i].Slug == ref {
			c := demoCampaigns[i]
			return &c, true
		}
	}
	return nil, false
}

// DemoCampaigns lists the canned campaigns.
func DemoCampaigns() []domain.Campaign {
	out := make([]domain.Campaign, len(demoCampaigns))
	copy(out, demoCampaigns)
	return out
}

// demoContributionsFor returns the canned contributions for a demo campaign,
// newest first.
func demoContributionsFor(campaignID string) []domain.Contribution {
	var out []domain.Contribution
	for _, c := range demoContributions {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DemoContributionsFor exposes the canned dataset for merge into read paths.
func DemoContributionsFor(campaignID string) []domain.Contribution {
	return demoContributionsFor(campaignID)
}
