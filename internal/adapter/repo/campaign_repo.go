package repo

import (
	"context"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/sqlinline"

	"github.com/jackc/pgx/v5"
)

// CampaignRepositoryPG implements domain.CampaignRepository backed by PostgreSQL.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCampaignRepository creates a new campaign repo.
func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

// Create inserts a new campaign and returns it with its generated identifier.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCampaign,
		campaign.UserID,
		campaign.Title,
		campaign.Description,
		campaign.GoalAmount,
		string(campaign.Mode),
		string(campaign.Category),
		campaign.Slug,
		campaign.ThemeColor,
		campaign.CoverImageURL,
		campaign.IsPublic,
		campaign.EndDate,
	)
	created := *campaign
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID fetches a campaign by its identifier.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectCampaignByID, id)
	return scanCampaign(row)
}

// GetBySlug fetches a campaign by its public slug.
func (r *CampaignRepositoryPG) GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectCampaignBySlug, slug)
	return scanCampaign(row)
}

// UpdateCoverImage replaces the campaign's cover image URL and returns the
// updated row.
func (r *CampaignRepositoryPG) UpdateCoverImage(ctx context.Context, id, url string) (*domain.Campaign, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateCampaignCover, id, url)
	return scanCampaign(row)
}

// ListByOwner returns the caller's campaigns, newest first.
func (r *CampaignRepositoryPG) ListByOwner(ctx context.Context, userID string) ([]domain.Campaign, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaignsByOwner, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	var mode, category string
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.GoalAmount,
		&mode,
		&category,
		&c.Slug,
		&c.ThemeColor,
		&c.CoverImageURL,
		&c.IsPublic,
		&c.EndDate,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Mode = domain.CampaignMode(mode)
	c.Category = domain.CampaignCategory(category)
	return &c, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
