package domain

import (
	"strings"
	"time"
)

// CampaignMode enumerates presentation variants. The mode changes layout and
// copy on the client, never the underlying data.
type CampaignMode string

const (
	CampaignModeMerchant CampaignMode = "merchant"
	CampaignModeEvent    CampaignMode = "event"
	CampaignModeActivism CampaignMode = "activism"
)

// CampaignCategory enumerates supported campaign categories.
type CampaignCategory string

const (
	CategoryEducation CampaignCategory = "education"
	CategoryMedical   CampaignCategory = "medical"
	CategoryBusiness  CampaignCategory = "business"
	CategoryCommunity CampaignCategory = "community"
	CategoryEmergency CampaignCategory = "emergency"
	CategoryCreative  CampaignCategory = "creative"
	CategorySports    CampaignCategory = "sports"
	CategoryCharity   CampaignCategory = "charity"
	CategoryOther     CampaignCategory = "other"
)

// CampaignSource tags a campaign as live (database-backed) or demo (canned
// dataset, no live feed). Decided once when the campaign is loaded.
type CampaignSource int

const (
	CampaignSourceLive CampaignSource = iota
	CampaignSourceDemo
)

// demoIDPrefix marks synthetic campaign identifiers whose contribution data
// is canned rather than persisted.
const demoIDPrefix = "demo-"

// Campaign represents a fundraising page.
type Campaign struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	GoalAmount    int64 // satoshis
	Mode          CampaignMode
	Category      CampaignCategory
	Slug          string
	ThemeColor    string
	CoverImageURL string
	IsPublic      bool
	EndDate       *time.Time
	CreatedAt     time.Time
}

// Source classifies the campaign by identifier.
func (c Campaign) Source() CampaignSource {
	return SourceForCampaignID(c.ID)
}

// SourceForCampaignID classifies a campaign identifier without loading it.
func SourceForCampaignID(id string) CampaignSource {
	if strings.HasPrefix(id, demoIDPrefix) {
		return CampaignSourceDemo
	}
	return CampaignSourceLive
}

// ValidMode reports whether m is one of the supported presentation modes.
func ValidMode(m CampaignMode) bool {
	switch m {
	case CampaignModeMerchant, CampaignModeEvent, CampaignModeActivism:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known campaign category.
func ValidCategory(c CampaignCategory) bool {
	switch c {
	case CategoryEducation, CategoryMedical, CategoryBusiness, CategoryCommunity,
		CategoryEmergency, CategoryCreative, CategorySports, CategoryCharity, CategoryOther:
		return true
	}
	return false
}

// Slugify derives a URL slug from a campaign title: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, no leading or trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Progress returns the display progress percentage for a campaign: zero when
// the goal is zero or negative, clamped to [0, 100] otherwise.
func Progress(goalAmount, totalRaised int64) float64 {
	if goalAmount <= 0 {
		return 0
	}
	p := float64(totalRaised) / float64(goalAmount) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
