package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/feed"
	"crowdpay/internal/infra"
)

// ContributionService records contributions and serves the aggregated read
// model for a campaign.
type ContributionService struct {
	campaigns     domain.CampaignRepository
	contributions domain.ContributionRepository
	logger        zerolog.Logger
}

func NewContributionService(campaigns domain.CampaignRepository, contributions domain.ContributionRepository, logger zerolog.Logger) *ContributionService {
	return &ContributionService{campaigns: campaigns, contributions: contributions, logger: logger}
}

// RecordContributionInput carries a new contribution.
type RecordContributionInput struct {
	CampaignID      string
	ContributorName string // blank means anonymous
	Amount          int64
	PaymentMethod   domain.PaymentMethod
	CountryCode     string
	PaymentHash     string
}

// Record validates and inserts a contribution. Contributions are immutable;
// there is no update or delete counterpart.
func (s *ContributionService) Record(ctx context.Context, in RecordContributionInput) (*domain.Contribution, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.PaymentMethod)
	}
	if domain.SourceForCampaignID(in.CampaignID) == domain.CampaignSourceDemo {
		return nil, fmt.Errorf("%w: demo campaigns do not accept contributions", domain.ErrValidation)
	}
	if _, err := s.campaigns.GetByID(ctx, in.CampaignID); err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, in.CampaignID)
		}
		return nil, fmt.Errorf("%w: load campaign: %v", domain.ErrPersistence, err)
	}

	contribution := &domain.Contribution{
		CampaignID:      in.CampaignID,
		ContributorName: strings.TrimSpace(in.ContributorName),
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		CountryCode:     strings.ToUpper(strings.TrimSpace(in.CountryCode)),
		PaymentHash:     in.PaymentHash,
	}
	created, err := s.contributions.Create(ctx, contribution)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			// The settlement for this payment hash was already recorded.
			return nil, fmt.Errorf("%w: payment already recorded", domain.ErrDuplicateOperation)
		}
		return nil, fmt.Errorf("%w: record contribution: %v", domain.ErrPersistence, err)
	}
	s.logger.Info().Str("campaign_id", created.CampaignID).Int64("amount_sats", created.Amount).Msg("contribution recorded")
	return created, nil
}

// List returns the full contribution history for a campaign, newest first,
// with the running total. Demo campaigns serve the canned dataset.
func (s *ContributionService) List(ctx context.Context, campaignID string) ([]domain.Contribution, int64, error) {
	var items []domain.Contribution
	if domain.SourceForCampaignID(campaignID) == domain.CampaignSourceDemo {
		items = feed.DemoContributionsFor(campaignID)
	} else {
		var err error
		items, err = s.contributions.ListByCampaign(ctx, campaignID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: list contributions: %v", domain.ErrPersistence, err)
		}
	}
	var total int64
	for _, c := range items {
		total += c.Amount
	}
	return items, total, nil
}
