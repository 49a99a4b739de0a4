package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/providers/blink"
	"crowdpay/internal/service"
)

type fakePendingRepo struct {
	items []domain.PendingInvoice
}

func (r *fakePendingRepo) Create(_ context.Context, inv *domain.PendingInvoice) error {
	r.items = append(r.items, *inv)
	return nil
}

func (r *fakePendingRepo) ListPending(context.Context, int) ([]domain.PendingInvoice, error) {
	return r.items, nil
}

func (r *fakePendingRepo) MarkState(context.Context, string, domain.InvoiceState) error {
	return nil
}

type fakeInvoiceProvider struct {
	invoice *blink.Invoice
	calls   int
}

func (f *fakeInvoiceProvider) CreateInvoice(_ context.Context, amountSats int64, memo string) (*blink.Invoice, error) {
	f.calls++
	return f.invoice, nil
}

const invoiceCampaignID = "4f8a6c1e-2b3d-4e5f-9a0b-7c6d5e4f3a2b"

func invoiceTestApp() (*App, *fakeInvoiceProvider, *fakePendingRepo) {
	app, campaignRepo, _ := newTestApp(&domain.Campaign{ID: invoiceCampaignID, Title: "Water Well", IsPublic: true})
	provider := &fakeInvoiceProvider{invoice: &blink.Invoice{
		PaymentRequest: "lnbc25u1p...",
		PaymentHash:    "hash-1",
		Satoshis:       2500,
	}}
	pending := &fakePendingRepo{}
	app.Invoices = service.NewInvoiceService(provider, campaignRepo, pending, time.Hour, zerolog.Nop())
	return app, provider, pending
}

func TestInvoicesCreate(t *testing.T) {
	app, _, pending := invoiceTestApp()

	body := `{"campaign_id":"` + invoiceCampaignID + `","amount_sats":2500,"contributor_name":"Amina"}`
	rr := httptest.NewRecorder()
	app.InvoicesCreate(rr, httptest.NewRequest("POST", "/v1/invoices", strings.NewReader(body)))

	if rr.Code != 201 {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	payload := decodeBody(t, rr)
	if payload["success"] != true {
		t.Fatalf("success = %v", payload["success"])
	}
	if payload["invoice"] != "lnbc25u1p..." || payload["payment_hash"] != "hash-1" {
		t.Fatalf("payload = %v", payload)
	}
	if len(pending.items) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending.items))
	}
}

func TestInvoicesCreate_InvalidAmountNeverReachesProvider(t *testing.T) {
	app, provider, _ := invoiceTestApp()

	body := `{"campaign_id":"` + invoiceCampaignID + `","amount_sats":0}`
	rr := httptest.NewRecorder()
	app.InvoicesCreate(rr, httptest.NewRequest("POST", "/v1/invoices", strings.NewReader(body)))

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if code := errorCode(t, rr); code != "bad_request" {
		t.Fatalf("code = %q", code)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times", provider.calls)
	}
}

func TestInvoicesCreate_UnknownCampaignNeverReachesProvider(t *testing.T) {
	app, provider, _ := invoiceTestApp()

	body := `{"campaign_id":"nope","amount_sats":100}`
	rr := httptest.NewRecorder()
	app.InvoicesCreate(rr, httptest.NewRequest("POST", "/v1/invoices", strings.NewReader(body)))

	if rr.Code != 404 {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times", provider.calls)
	}
}
