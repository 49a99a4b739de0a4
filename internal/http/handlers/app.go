package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/feed"
	"crowdpay/internal/middleware"
	"crowdpay/internal/service"
	"crowdpay/internal/storage"
)

// App bundles the dependencies handlers need. Handlers stay thin: decode,
// delegate to a service, encode.
type App struct {
	Logger        zerolog.Logger
	Campaigns     *service.CampaignService
	Contributions *service.ContributionService
	Invoices      *service.InvoiceService
	Wallets       *service.WalletService

	ContributionRepo domain.ContributionRepository
	Notifier         feed.Notifier

	Files       *storage.FileStore
	FileBaseURL string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// domainError maps sentinel errors onto the wire envelope. Unknown errors
// are reported as internal without leaking detail.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", userMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", userMessage(err))
	case errors.Is(err, domain.ErrDuplicateOperation):
		a.error(w, http.StatusConflict, "duplicate", userMessage(err))
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "provider", "payment provider request failed")
	case errors.Is(err, domain.ErrPersistence):
		a.error(w, http.StatusInternalServerError, "persistence", "storage operation failed")
	default:
		a.Logger.Error().Err(err).Msg("unclassified handler error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// userMessage exposes the error text. Validation, not-found and duplicate
// wraps carry no internals, so the full chain is safe to show a caller.
func userMessage(err error) string {
	return err.Error()
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func localeFor(r *http.Request) string {
	return middleware.LocaleFromContext(r.Context())
}
