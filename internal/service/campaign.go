package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/feed"
	"crowdpay/internal/infra"
)

// CampaignService owns campaign lifecycle and lookup, including the canned
// demo campaigns that exist only in memory.
type CampaignService struct {
	campaigns domain.CampaignRepository
	logger    zerolog.Logger
}

func NewCampaignService(campaigns domain.CampaignRepository, logger zerolog.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, logger: logger}
}

// CreateCampaignInput carries the fields a creator controls.
type CreateCampaignInput struct {
	Title         string
	Description   string
	GoalAmount    int64
	Mode          domain.CampaignMode
	Category      domain.CampaignCategory
	Slug          string
	ThemeColor    string
	CoverImageURL string
	IsPublic      bool
	EndDate       *time.Time
}

// Create validates and persists a new campaign owned by userID. A blank slug
// is derived from the title.
func (s *CampaignService) Create(ctx context.Context, userID string, in CreateCampaignInput) (*domain.Campaign, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.GoalAmount < 0 {
		return nil, fmt.Errorf("%w: goal amount must not be negative", domain.ErrValidation)
	}
	if in.Mode == "" {
		in.Mode = domain.CampaignModeMerchant
	}
	if !domain.ValidMode(in.Mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrValidation, in.Mode)
	}
	if in.Category == "" {
		in.Category = domain.CategoryOther
	}
	if !domain.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = domain.Slugify(in.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug could not be derived from title", domain.ErrValidation)
	}
	if strings.HasPrefix(slug, "demo-") {
		return nil, fmt.Errorf("%w: slug prefix reserved for demo campaigns", domain.ErrValidation)
	}

	campaign := &domain.Campaign{
		UserID:        userID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		GoalAmount:    in.GoalAmount,
		Mode:          in.Mode,
		Category:      in.Category,
		Slug:          slug,
		ThemeColor:    in.ThemeColor,
		CoverImageURL: in.CoverImageURL,
		IsPublic:      in.IsPublic,
		EndDate:       in.EndDate,
	}
	created, err := s.campaigns.Create(ctx, campaign)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q is taken", domain.ErrDuplicateOperation, slug)
		}
		return nil, fmt.Errorf("%w: create campaign: %v", domain.ErrPersistence, err)
	}
	s.logger.Info().Str("campaign_id", created.ID).Str("slug", created.Slug).Msg("campaign created")
	return created, nil
}

// GetByRef resolves a campaign by slug, id or demo identifier. Private
// campaigns are only visible to their owner.
func (s *CampaignService) GetByRef(ctx context.Context, ref, viewerID string) (*domain.Campaign, error) {
	if demo, ok := feed.DemoCampaign(ref); ok {
		return demo, nil
	}
	campaign, err := s.campaigns.GetBySlug(ctx, ref)
	if infra.IsNoRows(err) {
		if _, parseErr := uuid.Parse(ref); parseErr != nil {
			return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, ref)
		}
		campaign, err = s.campaigns.GetByID(ctx, ref)
	}
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("%w: load campaign: %v", domain.ErrPersistence, err)
	}
	if !campaign.IsPublic && campaign.UserID != viewerID {
		return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, ref)
	}
	return campaign, nil
}

// GetByID resolves a campaign by identifier, demo campaigns included.
func (s *CampaignService) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	if domain.SourceForCampaignID(id) == domain.CampaignSourceDemo {
		if demo, ok := feed.DemoCampaign(id); ok {
			return demo, nil
		}
		return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, id)
	}
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: load campaign: %v", domain.ErrPersistence, err)
	}
	return campaign, nil
}

// SetCoverImage stores the cover image URL for a campaign the caller owns.
func (s *CampaignService) SetCoverImage(ctx context.Context, userID, campaignID, url string) (*domain.Campaign, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if domain.SourceForCampaignID(campaignID) == domain.CampaignSourceDemo {
		return nil, fmt.Errorf("%w: demo campaigns cannot be modified", domain.ErrValidation)
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, campaignID)
		}
		return nil, fmt.Errorf("%w: load campaign: %v", domain.ErrPersistence, err)
	}
	if campaign.UserID != userID {
		return nil, fmt.Errorf("%w: campaign %q", domain.ErrNotFound, campaignID)
	}
	updated, err := s.campaigns.UpdateCoverImage(ctx, campaignID, url)
	if err != nil {
		return nil, fmt.Errorf("%w: update cover image: %v", domain.ErrPersistence, err)
	}
	return updated, nil
}

// ListOwn returns the caller's campaigns, newest first.
func (s *CampaignService) ListOwn(ctx context.Context, userID string) ([]domain.Campaign, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := s.campaigns.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list campaigns: %v", domain.ErrPersistence, err)
	}
	return items, nil
}
