package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdpay/internal/domain"
	"crowdpay/internal/feed"
)

// CampaignLive streams the contribution feed over server-sent events. The
// first event is the current snapshot; each subsequent insert produces a
// fresh snapshot event. Demo campaigns get the canned snapshot and then an
// open, silent stream.
func (a *App) CampaignLive(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByRef(r.Context(), chi.URLParam(r, "campaignRef"), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}

	// The stream outlives the server-wide write timeout; settlement can take
	// minutes, so lift the deadline for this response only.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		a.Logger.Debug().Err(err).Msg("clear write deadline for event stream")
	}

	f := feed.New(r.Context(), campaign.ID, a.ContributionRepo, a.Notifier, a.Logger)
	defer f.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Drain the signal raised while the snapshot was built; the first event
	// below already carries that state.
	select {
	case <-f.Updates():
	default:
	}
	a.writeFeedEvent(w, campaign.GoalAmount, f)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-f.Updates():
			a.writeFeedEvent(w, campaign.GoalAmount, f)
			flusher.Flush()
		}
	}
}

func (a *App) writeFeedEvent(w http.ResponseWriter, goalAmount int64, f *feed.Feed) {
	items, total := f.Snapshot()
	payloads := make([]map[string]any, 0, len(items))
	for _, c := range items {
		payloads = append(payloads, contributionPayload(c))
	}
	data, err := json.Marshal(map[string]any{
		"contributions": payloads,
		"total_sats":    total,
		"progress":      domain.Progress(goalAmount, total),
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("encode feed event")
		return
	}
	fmt.Fprintf(w, "event: contributions\ndata: %s\n\n", data)
}
