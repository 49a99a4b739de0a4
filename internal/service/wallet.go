package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/providers/blink"
)

// WalletProvider is the slice of the payment provider needed for provisioning.
type WalletProvider interface {
	DefaultWallet(ctx context.Context) (*blink.Wallet, error)
}

// WalletService provisions hosted wallets: one provider call, one profile
// upsert, no retry. Repeated calls for the same user are idempotent because
// the alias is derived deterministically and the write is an upsert.
type WalletService struct {
	provider       WalletProvider
	profiles       domain.ProfileRepository
	platformDomain string
	logger         zerolog.Logger
}

func NewWalletService(provider WalletProvider, profiles domain.ProfileRepository, platformDomain string, logger zerolog.Logger) *WalletService {
	return &WalletService{
		provider:       provider,
		profiles:       profiles,
		platformDomain: platformDomain,
		logger:         logger,
	}
}

// ProvisionResult is returned to the caller after a successful provisioning.
type ProvisionResult struct {
	WalletID     string
	PaymentAlias string
}

// Provision fetches the caller's default provider wallet and stores the
// derived payment alias on their profile. The profile is only written after
// the provider call succeeds, so a provider failure leaves no partial state.
func (s *WalletService) Provision(ctx context.Context, userID string) (*ProvisionResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}

	wallet, err := s.provider.DefaultWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch default wallet: %v", domain.ErrProviderFailure, err)
	}

	alias := domain.PaymentAliasFor(userID, s.platformDomain)
	profile := &domain.Profile{
		UserID:       userID,
		WalletType:   domain.WalletInternal,
		PaymentAlias: alias,
	}
	if _, err := s.profiles.Upsert(ctx, profile); err != nil {
		// The provider wallet exists and can be re-queried; only the local
		// bookkeeping failed.
		return nil, fmt.Errorf("%w: store payment alias: %v", domain.ErrPersistence, err)
	}

	s.logger.Info().Str("user_id", userID).Str("wallet_id", wallet.ID).Msg("wallet provisioned")
	return &ProvisionResult{WalletID: wallet.ID, PaymentAlias: alias}, nil
}
