package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdpay/internal/domain"
	"crowdpay/internal/middleware"
	"crowdpay/internal/service"
)

type contributionRequest struct {
	ContributorName string `json:"contributor_name"`
	Amount          int64  `json:"amount_sats"`
	AmountKES       int64  `json:"amount_kes"`
	PaymentMethod   string `json:"payment_method"`
}

func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	campaign, err := a.Campaigns.GetByRef(r.Context(), chi.URLParam(r, "campaignRef"), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}

	// Mobile money amounts arrive in KES; the illustrative rate maps them
	// onto the satoshi ledger for display consistency.
	if req.Amount == 0 && req.AmountKES > 0 {
		req.Amount = domain.KESToSats(req.AmountKES)
	}

	created, err := a.Contributions.Record(r.Context(), service.RecordContributionInput{
		CampaignID:      campaign.ID,
		ContributorName: req.ContributorName,
		Amount:          req.Amount,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		CountryCode:     middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, contributionPayload(*created))
}

func (a *App) ContributionsList(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByRef(r.Context(), chi.URLParam(r, "campaignRef"), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items, total, err := a.Contributions.List(r.Context(), campaign.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	payloads := make([]map[string]any, 0, len(items))
	for _, c := range items {
		payloads = append(payloads, contributionPayload(c))
	}
	a.json(w, http.StatusOK, map[string]any{
		"items":       payloads,
		"total_sats":  total,
		"total_count": len(items),
	})
}

func contributionPayload(c domain.Contribution) map[string]any {
	name := c.ContributorName
	if name == "" {
		name = "Anonymous"
	}
	payload := map[string]any{
		"id":               c.ID,
		"campaign_id":      c.CampaignID,
		"contributor_name": name,
		"amount_sats":      c.Amount,
		"equivalent_kes":   domain.SatsToKES(c.Amount),
		"payment_method":   c.PaymentMethod,
		"created_at":       c.CreatedAt.Format(time.RFC3339),
	}
	if c.CountryCode != "" {
		payload["country_code"] = c.CountryCode
	}
	return payload
}
