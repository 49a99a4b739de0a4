package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/providers/blink"
)

// StatusProvider checks the payment status of a Lightning invoice.
type StatusProvider interface {
	InvoiceStatus(ctx context.Context, paymentRequest string) (string, error)
}

// Settler polls pending invoices against the payment provider and turns
// settled ones into recorded contributions.
type Settler struct {
	provider      StatusProvider
	pending       domain.PendingInvoiceRepository
	contributions domain.ContributionRepository
	batchSize     int
	now           func() time.Time
	logger        zerolog.Logger
}

func NewSettler(provider StatusProvider, pending domain.PendingInvoiceRepository, contributions domain.ContributionRepository, logger zerolog.Logger) *Settler {
	return &Settler{
		provider:      provider,
		pending:       pending,
		contributions: contributions,
		batchSize:     50,
		now:           time.Now,
		logger:        logger,
	}
}

// RunOnce processes a single batch of pending invoices. Per-invoice failures
// are logged and skipped so one bad invoice cannot stall the rest.
func (s *Settler) RunOnce(ctx context.Context) error {
	invoices, err := s.pending.ListPending(ctx, s.batchSize)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.settle(ctx, inv)
	}
	return nil
}

func (s *Settler) settle(ctx context.Context, inv domain.PendingInvoice) {
	log := s.logger.With().Str("payment_hash", inv.PaymentHash).Str("campaign_id", inv.CampaignID).Logger()

	if s.now().After(inv.ExpiresAt) {
		if err := s.pending.MarkState(ctx, inv.PaymentHash, domain.InvoiceExpired); err != nil {
			log.Error().Err(err).Msg("mark invoice expired")
		}
		return
	}

	status, err := s.provider.InvoiceStatus(ctx, inv.PaymentRequest)
	if err != nil {
		log.Warn().Err(err).Msg("invoice status check failed")
		return
	}

	switch status {
	case blink.StatusPaid:
		contribution := &domain.Contribution{
			CampaignID:      inv.CampaignID,
			ContributorName: inv.ContributorName,
			Amount:          inv.Amount,
			PaymentMethod:   domain.PaymentLightning,
			PaymentHash:     inv.PaymentHash,
		}
		if _, err := s.contributions.Create(ctx, contribution); err != nil {
			if !infra.IsUniqueViolation(err) {
				log.Error().Err(err).Msg("record settled contribution")
				return
			}
			// Already recorded by an earlier attempt that failed before the
			// state flip. Marking paid below completes it.
		}
		if err := s.pending.MarkState(ctx, inv.PaymentHash, domain.InvoicePaid); err != nil {
			log.Error().Err(err).Msg("mark invoice paid")
			return
		}
		log.Info().Int64("amount_sats", inv.Amount).Msg("invoice settled")
	case blink.StatusExpired:
		if err := s.pending.MarkState(ctx, inv.PaymentHash, domain.InvoiceExpired); err != nil {
			log.Error().Err(err).Msg("mark invoice expired")
		}
	default:
		// Still pending; picked up again on the next pass.
	}
}
