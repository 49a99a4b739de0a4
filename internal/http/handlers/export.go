package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdpay/pkg/zip"
)

// CampaignExport bundles a campaign and its full contribution history into
// a zip archive for the owner.
func (a *App) CampaignExport(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByRef(r.Context(), chi.URLParam(r, "campaignRef"), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.UserID != a.currentUserID(r) {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}

	items, total, err := a.Contributions.List(r.Context(), campaign.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	meta, err := json.MarshalIndent(a.campaignPayload(r, campaign, total), "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode campaign")
		return
	}

	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	_ = cw.Write([]string{"id", "contributor_name", "amount_sats", "payment_method", "country_code", "created_at"})
	for _, c := range items {
		_ = cw.Write([]string{
			c.ID,
			c.ContributorName,
			strconv.FormatInt(c.Amount, 10),
			string(c.PaymentMethod),
			c.CountryCode,
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()

	archive := zip.ArchiveAssets([]zip.Asset{
		{Filename: "campaign.json", MIME: "application/json", Data: meta},
		{Filename: "contributions.csv", MIME: "text/csv", Data: buf.Bytes()},
	})
	if archive == nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+campaign.Slug+`.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
