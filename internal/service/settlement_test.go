package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/providers/blink"
)

func pendingInvoice(hash string) domain.PendingInvoice {
	return domain.PendingInvoice{
		PaymentHash:     hash,
		CampaignID:      "campaign-1",
		Amount:          2500,
		PaymentRequest:  "lnbc-" + hash,
		ContributorName: "Amina",
		State:           domain.InvoicePending,
		ExpiresAt:       time.Now().Add(time.Hour),
	}
}

func TestSettlerRunOnce_PaidInvoice(t *testing.T) {
	pending := &fakePendingRepo{items: []domain.PendingInvoice{pendingInvoice("hash-1")}}
	contributions := &fakeContributionRepo{}
	provider := &fakeBlink{statuses: map[string]string{"lnbc-hash-1": blink.StatusPaid}}
	settler := NewSettler(provider, pending, contributions, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(contributions.items) != 1 {
		t.Fatalf("contributions = %d, want 1", len(contributions.items))
	}
	got := contributions.items[0]
	if got.PaymentMethod != domain.PaymentLightning || got.PaymentHash != "hash-1" {
		t.Fatalf("contribution = %+v", got)
	}
	if got.Amount != 2500 || got.ContributorName != "Amina" {
		t.Fatalf("contribution = %+v", got)
	}
	if pending.marked["hash-1"] != domain.InvoicePaid {
		t.Fatalf("state = %q, want paid", pending.marked["hash-1"])
	}
}

func TestSettlerRunOnce_StillPending(t *testing.T) {
	pending := &fakePendingRepo{items: []domain.PendingInvoice{pendingInvoice("hash-1")}}
	contributions := &fakeContributionRepo{}
	provider := &fakeBlink{statuses: map[string]string{"lnbc-hash-1": blink.StatusPending}}
	settler := NewSettler(provider, pending, contributions, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(contributions.items) != 0 || len(pending.marked) != 0 {
		t.Fatalf("pending invoice was advanced: %+v %+v", contributions.items, pending.marked)
	}
}

func TestSettlerRunOnce_ExpiredByProvider(t *testing.T) {
	pending := &fakePendingRepo{items: []domain.PendingInvoice{pendingInvoice("hash-1")}}
	contributions := &fakeContributionRepo{}
	provider := &fakeBlink{statuses: map[string]string{"lnbc-hash-1": blink.StatusExpired}}
	settler := NewSettler(provider, pending, contributions, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if pending.marked["hash-1"] != domain.InvoiceExpired {
		t.Fatalf("state = %q, want expired", pending.marked["hash-1"])
	}
	if len(contributions.items) != 0 {
		t.Fatalf("expired invoice produced a contribution")
	}
}

func TestSettlerRunOnce_ExpiredByDeadlineSkipsProvider(t *testing.T) {
	inv := pendingInvoice("hash-1")
	inv.ExpiresAt = time.Now().Add(-time.Minute)
	pending := &fakePendingRepo{items: []domain.PendingInvoice{inv}}
	provider := &fakeBlink{statusErr: errors.New("must not be called")}
	settler := NewSettler(provider, pending, &fakeContributionRepo{}, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if pending.marked["hash-1"] != domain.InvoiceExpired {
		t.Fatalf("state = %q, want expired", pending.marked["hash-1"])
	}
}

func TestSettlerRunOnce_DuplicateContributionStillMarksPaid(t *testing.T) {
	pending := &fakePendingRepo{items: []domain.PendingInvoice{pendingInvoice("hash-1")}}
	contributions := &fakeContributionRepo{createErr: errUniqueViolation}
	provider := &fakeBlink{statuses: map[string]string{"lnbc-hash-1": blink.StatusPaid}}
	settler := NewSettler(provider, pending, contributions, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if pending.marked["hash-1"] != domain.InvoicePaid {
		t.Fatalf("state = %q, want paid", pending.marked["hash-1"])
	}
}

func TestSettlerRunOnce_StatusErrorLeavesInvoicePending(t *testing.T) {
	pending := &fakePendingRepo{items: []domain.PendingInvoice{pendingInvoice("hash-1"), pendingInvoice("hash-2")}}
	contributions := &fakeContributionRepo{}
	provider := &fakeBlink{statusErr: errors.New("timeout")}
	settler := NewSettler(provider, pending, contributions, zerolog.Nop())

	if err := settler.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(pending.marked) != 0 {
		t.Fatalf("states advanced despite status errors: %+v", pending.marked)
	}
}
