package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"crowdpay/internal/domain"
	"crowdpay/internal/feed"
	"crowdpay/internal/service"
)

type campaignRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	GoalAmount    int64   `json:"goal_amount_sats"`
	Mode          string  `json:"mode"`
	Category      string  `json:"category"`
	Slug          string  `json:"slug"`
	ThemeColor    string  `json:"theme_color"`
	CoverImageURL string  `json:"cover_image_url"`
	IsPublic      *bool   `json:"is_public"`
	EndDate       *string `json:"end_date"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	in := service.CreateCampaignInput{
		Title:         req.Title,
		Description:   req.Description,
		GoalAmount:    req.GoalAmount,
		Mode:          domain.CampaignMode(req.Mode),
		Category:      domain.CampaignCategory(req.Category),
		Slug:          req.Slug,
		ThemeColor:    req.ThemeColor,
		CoverImageURL: req.CoverImageURL,
		IsPublic:      true,
	}
	if req.IsPublic != nil {
		in.IsPublic = *req.IsPublic
	}
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "end_date must be RFC 3339")
			return
		}
		in.EndDate = &parsed
	}

	created, err := a.Campaigns.Create(r.Context(), a.currentUserID(r), in)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, a.campaignPayload(r, created, 0))
}

func (a *App) CampaignsListOwn(w http.ResponseWriter, r *http.Request) {
	items, err := a.Campaigns.ListOwn(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	payloads := make([]map[string]any, 0, len(items))
	for i := range items {
		_, total, err := a.Contributions.List(r.Context(), items[i].ID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		payloads = append(payloads, a.campaignPayload(r, &items[i], total))
	}
	a.json(w, http.StatusOK, map[string]any{"items": payloads})
}

// CampaignsListDemo serves the canned showcase campaigns with their fixed
// contribution totals.
func (a *App) CampaignsListDemo(w http.ResponseWriter, r *http.Request) {
	items := feed.DemoCampaigns()
	payloads := make([]map[string]any, 0, len(items))
	for i := range items {
		_, total, err := a.Contributions.List(r.Context(), items[i].ID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		payloads = append(payloads, a.campaignPayload(r, &items[i], total))
	}
	a.json(w, http.StatusOK, map[string]any{"items": payloads})
}

// CampaignGet resolves by slug or demo identifier and includes the running
// total and progress.
func (a *App) CampaignGet(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "campaignRef")
	campaign, err := a.Campaigns.GetByRef(r.Context(), ref, a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	_, total, err := a.Contributions.List(r.Context(), campaign.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, a.campaignPayload(r, campaign, total))
}

func (a *App) campaignPayload(r *http.Request, c *domain.Campaign, totalRaised int64) map[string]any {
	payload := map[string]any{
		"id":              c.ID,
		"title":           c.Title,
		"description":     c.Description,
		"goal_amount":     c.GoalAmount,
		"mode":            c.Mode,
		"category":        c.Category,
		"category_label":  categoryLabel(r, c.Category),
		"slug":            c.Slug,
		"theme_color":     c.ThemeColor,
		"cover_image_url": c.CoverImageURL,
		"is_public":       c.IsPublic,
		"demo":            c.Source() == domain.CampaignSourceDemo,
		"total_raised":    totalRaised,
		"progress":        domain.Progress(c.GoalAmount, totalRaised),
		// Illustrative display figure, never settlement math.
		"equivalent_kes": domain.SatsToKES(totalRaised),
		"created_at":     c.CreatedAt,
	}
	if c.EndDate != nil {
		payload["end_date"] = c.EndDate.Format(time.RFC3339)
	}
	return payload
}

// categoryLabel renders the category for display in the request locale's
// title casing.
func categoryLabel(r *http.Request, c domain.CampaignCategory) string {
	tag := language.Und
	if r != nil {
		if parsed, err := language.Parse(localeFor(r)); err == nil {
			tag = parsed
		}
	}
	return cases.Title(tag).String(string(c))
}
