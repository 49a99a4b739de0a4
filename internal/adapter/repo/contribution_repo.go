package repo

import (
	"context"
	"encoding/json"
	"time"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/sqlinline"
)

// ContributionRepositoryPG implements domain.ContributionRepository backed by
// PostgreSQL. Inserts also fan out over the contribution_inserts channel so
// live feeds learn about them without re-fetching.
type ContributionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewContributionRepository creates a new contribution repo.
func NewContributionRepository(sql infra.SQLExecutor) *ContributionRepositoryPG {
	return &ContributionRepositoryPG{sql: sql}
}

// notifyPayload is the JSON shape published on contribution_inserts.
type notifyPayload struct {
	ID              string `json:"id"`
	CampaignID      string `json:"campaign_id"`
	ContributorName string `json:"contributor_name"`
	Amount          int64  `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	CountryCode     string `json:"country_code,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// Create inserts a contribution and notifies subscribed feeds.
func (r *ContributionRepositoryPG) Create(ctx context.Context, contribution *domain.Contribution) (*domain.Contribution, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertContribution,
		contribution.CampaignID,
		contribution.ContributorName,
		contribution.Amount,
		string(contribution.PaymentMethod),
		contribution.CountryCode,
		contribution.PaymentHash,
	)
	created := *contribution
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(notifyPayload{
		ID:              created.ID,
		CampaignID:      created.CampaignID,
		ContributorName: created.ContributorName,
		Amount:          created.Amount,
		PaymentMethod:   string(created.PaymentMethod),
		CountryCode:     created.CountryCode,
		CreatedAt:       created.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return &created, err
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QNotifyContribution, string(payload)); err != nil {
		// The row is committed; a lost notification only delays feeds until
		// their next snapshot.
		return &created, err
	}
	return &created, nil
}

// ListByCampaign returns all contributions for a campaign, newest first.
func (r *ContributionRepositoryPG) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Contribution, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListContributionsByCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		var method string
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.ContributorName, &c.Amount, &method, &c.CountryCode, &c.PaymentHash, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.PaymentMethod = domain.PaymentMethod(method)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.ContributionRepository = (*ContributionRepositoryPG)(nil)
