package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
)

// channelName is the Postgres NOTIFY channel carrying contribution inserts.
const channelName = "contribution_inserts"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute

	// subscriberBuffer bounds how far a slow consumer may lag before events
	// are dropped for it. Dropped subscribers recover on their next snapshot.
	subscriberBuffer = 64
)

// PGListener receives contribution inserts over LISTEN/NOTIFY and fans them
// out to per-campaign subscribers. Events arrive in database delivery order;
// no ordering is guaranteed relative to creation time under concurrent writers.
type PGListener struct {
	listener *pq.Listener
	logger   zerolog.Logger

	mu     sync.Mutex
	subs   map[string]map[int]chan domain.Contribution
	nextID int
	closed bool
	done   chan struct{}
}

// NewPGListener connects to the database and starts listening. The underlying
// pq listener reconnects on its own; a reconnect gap is bridged by the next
// snapshot load of each feed.
func NewPGListener(databaseURL string, logger zerolog.Logger) (*PGListener, error) {
	l := &PGListener{
		logger: logger,
		subs:   make(map[string]map[int]chan domain.Contribution),
		done:   make(chan struct{}),
	}
	l.listener = pq.NewListener(databaseURL, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn().Err(err).Int("event", int(ev)).Msg("feed: listener event")
		}
	})
	if err := l.listener.Listen(channelName); err != nil {
		_ = l.listener.Close()
		return nil, err
	}
	go l.run()
	return l, nil
}

type insertEvent struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	ContributorName string    `json:"contributor_name"`
	Amount          int64     `json:"amount"`
	PaymentMethod   string    `json:"payment_method"`
	CountryCode     string    `json:"country_code"`
	CreatedAt       time.Time `json:"created_at"`
}

func (l *PGListener) run() {
	defer close(l.done)
	for n := range l.listener.Notify {
		if n == nil {
			// Reconnect marker from pq; feeds catch up on their next snapshot.
			continue
		}
		var ev insertEvent
		if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
			l.logger.Error().Err(err).Msg("feed: bad notify payload")
			continue
		}
		l.dispatch(domain.Contribution{
			ID:              ev.ID,
			CampaignID:      ev.CampaignID,
			ContributorName: ev.ContributorName,
			Amount:          ev.Amount,
			PaymentMethod:   domain.PaymentMethod(ev.PaymentMethod),
			CountryCode:     ev.CountryCode,
			CreatedAt:       ev.CreatedAt,
		})
	}
}

func (l *PGListener) dispatch(c domain.Contribution) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs[c.CampaignID] {
		select {
		case ch <- c:
		default:
			l.logger.Warn().Str("campaign_id", c.CampaignID).Msg("feed: dropping event for slow subscriber")
		}
	}
}

// Subscribe registers for inserts on one campaign. The cancel func closes the
// returned channel and is safe to call more than once.
func (l *PGListener) Subscribe(campaignID string) (<-chan domain.Contribution, func()) {
	ch := make(chan domain.Contribution, subscriberBuffer)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		close(ch)
		return ch, func() {}
	}
	l.nextID++
	id := l.nextID
	if l.subs[campaignID] == nil {
		l.subs[campaignID] = make(map[int]chan domain.Contribution)
	}
	l.subs[campaignID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if subs, ok := l.subs[campaignID]; ok {
				if _, ok := subs[id]; ok {
					delete(subs, id)
					if len(subs) == 0 {
						delete(l.subs, campaignID)
					}
					close(ch)
				}
			}
		})
	}
	return ch, cancel
}

// Close tears down the connection and closes every subscriber channel.
func (l *PGListener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	for campaignID, subs := range l.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
		delete(l.subs, campaignID)
	}
	l.mu.Unlock()

	err := l.listener.Close()
	<-l.done
	return err
}

var _ Notifier = (*PGListener)(nil)
