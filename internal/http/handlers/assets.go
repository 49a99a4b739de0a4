package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxCoverBytes = 5 << 20

var coverExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// CampaignCoverUpload stores a cover image for a campaign the caller owns
// and records its public URL on the campaign.
func (a *App) CampaignCoverUpload(w http.ResponseWriter, r *http.Request) {
	// Ownership gates the storage write: the stored key is derived from the
	// campaign id, so a non-owner upload must not reach the file store.
	campaign, err := a.Campaigns.GetByRef(r.Context(), chi.URLParam(r, "campaignRef"), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.UserID != a.currentUserID(r) {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}

	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if _, ok := coverExtensions[ext]; !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxCoverBytes+1))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}
	if len(data) > maxCoverBytes {
		a.error(w, http.StatusBadRequest, "bad_request", "image exceeds 5 MiB")
		return
	}

	key := "covers/" + campaign.ID + ext
	if _, err := a.Files.Write(r.Context(), key, data); err != nil {
		a.Logger.Error().Err(err).Str("key", key).Msg("store cover image")
		a.error(w, http.StatusInternalServerError, "persistence", "failed to store image")
		return
	}

	url := strings.TrimRight(a.FileBaseURL, "/") + "/" + key
	updated, err := a.Campaigns.SetCoverImage(r.Context(), a.currentUserID(r), campaign.ID, url)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"cover_image_url": updated.CoverImageURL,
	})
}
