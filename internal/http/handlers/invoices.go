package handlers

import (
	"encoding/json"
	"net/http"

	"crowdpay/internal/domain"
)

type invoiceRequest struct {
	CampaignID      string `json:"campaign_id"`
	Amount          int64  `json:"amount_sats"`
	ContributorName string `json:"contributor_name"`
}

func (a *App) InvoicesCreate(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	inv, err := a.Invoices.Create(r.Context(), req.CampaignID, req.Amount, req.ContributorName)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"success":        true,
		"invoice":        inv.PaymentRequest,
		"payment_hash":   inv.PaymentHash,
		"amount_sats":    inv.Amount,
		"equivalent_kes": domain.SatsToKES(inv.Amount),
	})
}
