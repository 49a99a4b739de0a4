package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/providers/blink"
)

func TestWalletProvision(t *testing.T) {
	provider := &fakeBlink{wallet: &blink.Wallet{ID: "wallet-1", Currency: "BTC"}}
	profiles := &fakeProfileRepo{}
	svc := NewWalletService(provider, profiles, "crowdpay.me", zerolog.Nop())

	res, err := svc.Provision(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if res.WalletID != "wallet-1" {
		t.Fatalf("wallet id = %q", res.WalletID)
	}
	if res.PaymentAlias != "user-1@crowdpay.me" {
		t.Fatalf("alias = %q", res.PaymentAlias)
	}
	if len(profiles.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(profiles.upserts))
	}
	if profiles.upserts[0].WalletType != domain.WalletInternal {
		t.Fatalf("wallet type = %q", profiles.upserts[0].WalletType)
	}
}

func TestWalletProvision_RepeatedCallsConverge(t *testing.T) {
	provider := &fakeBlink{wallet: &blink.Wallet{ID: "wallet-1"}}
	profiles := &fakeProfileRepo{}
	svc := NewWalletService(provider, profiles, "crowdpay.me", zerolog.Nop())

	first, err := svc.Provision(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("first Provision: %v", err)
	}
	second, err := svc.Provision(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second Provision: %v", err)
	}
	if first.PaymentAlias != second.PaymentAlias {
		t.Fatalf("aliases diverged: %q vs %q", first.PaymentAlias, second.PaymentAlias)
	}
}

func TestWalletProvision_RequiresUser(t *testing.T) {
	svc := NewWalletService(&fakeBlink{}, &fakeProfileRepo{}, "crowdpay.me", zerolog.Nop())
	if _, err := svc.Provision(context.Background(), " "); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWalletProvision_ProviderFailureWritesNothing(t *testing.T) {
	provider := &fakeBlink{walletErr: errors.New("upstream down")}
	profiles := &fakeProfileRepo{}
	svc := NewWalletService(provider, profiles, "crowdpay.me", zerolog.Nop())

	_, err := svc.Provision(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("err = %v, want ErrProviderFailure", err)
	}
	if len(profiles.upserts) != 0 {
		t.Fatalf("profile written despite provider failure")
	}
}

func TestWalletProvision_PersistenceFailure(t *testing.T) {
	provider := &fakeBlink{wallet: &blink.Wallet{ID: "wallet-1"}}
	profiles := &fakeProfileRepo{upsertErr: errors.New("db gone")}
	svc := NewWalletService(provider, profiles, "crowdpay.me", zerolog.Nop())

	if _, err := svc.Provision(context.Background(), "user-1"); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
}
