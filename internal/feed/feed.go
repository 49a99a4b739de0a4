package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
)

// Notifier delivers contribution insert events for a campaign. The returned
// cancel func must be safe to call more than once.
type Notifier interface {
	Subscribe(campaignID string) (<-chan domain.Contribution, func())
}

// Feed is the contribution read model for a single campaign: an ordered list
// (newest first) plus a running total. Live campaigns apply insert events as
// they arrive; demo campaigns serve a canned dataset and never subscribe.
type Feed struct {
	campaignID string
	source     domain.CampaignSource
	logger     zerolog.Logger

	mu            sync.RWMutex
	contributions []domain.Contribution
	total         int64
	seen          map[string]struct{}
	updates       chan struct{}

	cancel    func()
	done      chan struct{}
	closeOnce sync.Once
}

// New builds a feed for the campaign. The snapshot load happens synchronously;
// a snapshot error is logged and degrades to an empty feed rather than
// propagating. Subscription starts before the snapshot is applied, so an
// insert landing in between is deduplicated instead of lost.
func New(ctx context.Context, campaignID string, contributions domain.ContributionRepository, notifier Notifier, logger zerolog.Logger) *Feed {
	f := &Feed{
		campaignID: campaignID,
		source:     domain.SourceForCampaignID(campaignID),
		logger:     logger,
		seen:       make(map[string]struct{}),
		updates:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	if f.source == domain.CampaignSourceDemo {
		f.cancel = func() {}
		close(f.done)
		canned := demoContributionsFor(campaignID)
		for i := len(canned) - 1; i >= 0; i-- {
			f.apply(canned[i])
		}
		return f
	}

	var events <-chan domain.Contribution
	if notifier != nil {
		events, f.cancel = notifier.Subscribe(campaignID)
	} else {
		f.cancel = func() {}
	}

	snapshot, err := contributions.ListByCampaign(ctx, campaignID)
	if err != nil {
		logger.Error().Err(err).Str("campaign_id", campaignID).Msg("feed: snapshot load failed")
		snapshot = nil
	}
	// Snapshot is newest first; apply oldest first so prepends rebuild the order.
	for i := len(snapshot) - 1; i >= 0; i-- {
		f.apply(snapshot[i])
	}

	if events != nil {
		go f.run(events)
	} else {
		close(f.done)
	}
	return f
}

func (f *Feed) run(events <-chan domain.Contribution) {
	defer close(f.done)
	for c := range events {
		if c.CampaignID != f.campaignID {
			continue
		}
		f.apply(c)
	}
}

// apply prepends a contribution and adds its amount to the running total,
// skipping identifiers already counted.
func (f *Feed) apply(c domain.Contribution) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[c.ID]; ok {
		return
	}
	f.seen[c.ID] = struct{}{}
	f.contributions = append([]domain.Contribution{c}, f.contributions...)
	f.total += c.Amount
	select {
	case f.updates <- struct{}{}:
	default:
	}
}

// Updates signals after new contributions are applied. Signals coalesce;
// consumers read Snapshot for the current state.
func (f *Feed) Updates() <-chan struct{} {
	return f.updates
}

// Source reports whether this feed serves live or canned data.
func (f *Feed) Source() domain.CampaignSource {
	return f.source
}

// Snapshot returns a copy of the current list (newest first) and the running total.
func (f *Feed) Snapshot() ([]domain.Contribution, int64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.Contribution, len(f.contributions))
	copy(out, f.contributions)
	return out, f.total
}

// TotalRaised returns the running total in satoshis.
func (f *Feed) TotalRaised() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.total
}

// Close stops listening for updates. Safe to call repeatedly; no state
// mutation happens after it returns.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		f.cancel()
		<-f.done
	})
}
