package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/providers/blink"
)

// InvoiceProvider is the slice of the payment provider needed to mint invoices.
type InvoiceProvider interface {
	CreateInvoice(ctx context.Context, amountSats int64, memo string) (*blink.Invoice, error)
}

// InvoiceService mints Lightning invoices for campaign contributions.
// Amounts are satoshis at this boundary; no currency conversion happens here.
type InvoiceService struct {
	provider  InvoiceProvider
	campaigns domain.CampaignRepository
	pending   domain.PendingInvoiceRepository
	ttl       time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

func NewInvoiceService(provider InvoiceProvider, campaigns domain.CampaignRepository, pending domain.PendingInvoiceRepository, ttl time.Duration, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		provider:  provider,
		campaigns: campaigns,
		pending:   pending,
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
}

// Create validates the request, mints an invoice through the provider and
// records it for the settlement worker. Validation and the campaign lookup
// both happen before any provider call.
func (s *InvoiceService) Create(ctx context.Context, campaignID string, amountSats int64, contributorName string) (*domain.Invoice, error) {
	if amountSats <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if domain.SourceForCampaignID(campaignID) == domain.CampaignSourceDemo {
		return nil, fmt.Errorf("%w: demo campaigns do not accept contributions", domain.ErrValidation)
	}
	// Campaign ids are uuids; anything else cannot match a row and would
	// only trip the uuid cast in the query.
	if _, err := uuid.Parse(campaignID); err != nil {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
		}
		return nil, fmt.Errorf("%w: load campaign: %v", domain.ErrPersistence, err)
	}

	memo := "Contribution to " + campaign.Title
	minted, err := s.provider.CreateInvoice(ctx, amountSats, memo)
	if err != nil {
		return nil, fmt.Errorf("%w: create invoice: %v", domain.ErrProviderFailure, err)
	}

	record := &domain.PendingInvoice{
		PaymentHash:     minted.PaymentHash,
		CampaignID:      campaign.ID,
		Amount:          minted.Satoshis,
		PaymentRequest:  minted.PaymentRequest,
		ContributorName: contributorName,
		State:           domain.InvoicePending,
		ExpiresAt:       s.now().Add(s.ttl),
	}
	if err := s.pending.Create(ctx, record); err != nil {
		// Distinct from a provider failure: the invoice exists upstream but
		// settlement would never be detected, so the caller must not pay it.
		return nil, fmt.Errorf("%w: record pending invoice: %v", domain.ErrPersistence, err)
	}

	s.logger.Info().Str("campaign_id", campaign.ID).Int64("amount_sats", minted.Satoshis).Msg("invoice created")
	return &domain.Invoice{
		PaymentRequest: minted.PaymentRequest,
		PaymentHash:    minted.PaymentHash,
		Amount:         minted.Satoshis,
		CampaignID:     campaign.ID,
	}, nil
}
