package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"crowdpay/internal/domain"
	"crowdpay/internal/providers/blink"
)

var errUniqueViolation = &pgconn.PgError{Code: "23505"}

type fakeCampaignRepo struct {
	campaigns map[string]*domain.Campaign
	createErr error
	created   []*domain.Campaign
}

func newFakeCampaignRepo(campaigns ...*domain.Campaign) *fakeCampaignRepo {
	r := &fakeCampaignRepo{campaigns: map[string]*domain.Campaign{}}
	for _, c := range campaigns {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *campaign
	out.ID = fmt.Sprintf("campaign-%d", len(r.created)+1)
	r.created = append(r.created, &out)
	r.campaigns[out.ID] = &out
	return &out, nil
}

func (r *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	if c, ok := r.campaigns[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCampaignRepo) GetBySlug(_ context.Context, slug string) (*domain.Campaign, error) {
	for _, c := range r.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCampaignRepo) UpdateCoverImage(_ context.Context, id, url string) (*domain.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c.CoverImageURL = url
	return c, nil
}

func (r *fakeCampaignRepo) ListByOwner(_ context.Context, userID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeContributionRepo struct {
	items     []domain.Contribution
	createErr error
	listErr   error
}

func (r *fakeContributionRepo) Create(_ context.Context, contribution *domain.Contribution) (*domain.Contribution, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *contribution
	out.ID = fmt.Sprintf("contribution-%d", len(r.items)+1)
	r.items = append(r.items, out)
	return &out, nil
}

func (r *fakeContributionRepo) ListByCampaign(_ context.Context, campaignID string) ([]domain.Contribution, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Contribution
	for _, c := range r.items {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	upserts   []*domain.Profile
	upsertErr error
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.upserts = append(r.upserts, profile)
	return profile, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	for _, p := range r.upserts {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakePendingRepo struct {
	items     []domain.PendingInvoice
	createErr error
	marked    map[string]domain.InvoiceState
	markErr   error
}

func (r *fakePendingRepo) Create(_ context.Context, inv *domain.PendingInvoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items = append(r.items, *inv)
	return nil
}

func (r *fakePendingRepo) ListPending(_ context.Context, limit int) ([]domain.PendingInvoice, error) {
	out := r.items
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePendingRepo) MarkState(_ context.Context, paymentHash string, state domain.InvoiceState) error {
	if r.markErr != nil {
		return r.markErr
	}
	if r.marked == nil {
		r.marked = map[string]domain.InvoiceState{}
	}
	r.marked[paymentHash] = state
	return nil
}

type fakeBlink struct {
	wallet    *blink.Wallet
	walletErr error

	invoice     *blink.Invoice
	invoiceErr  error
	lastAmount  int64
	lastMemo    string
	createCalls int

	statuses  map[string]string
	statusErr error
}

func (f *fakeBlink) DefaultWallet(context.Context) (*blink.Wallet, error) {
	if f.walletErr != nil {
		return nil, f.walletErr
	}
	return f.wallet, nil
}

func (f *fakeBlink) CreateInvoice(_ context.Context, amountSats int64, memo string) (*blink.Invoice, error) {
	f.createCalls++
	f.lastAmount = amountSats
	f.lastMemo = memo
	if f.invoiceErr != nil {
		return nil, f.invoiceErr
	}
	return f.invoice, nil
}

func (f *fakeBlink) InvoiceStatus(_ context.Context, paymentRequest string) (string, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.statuses[paymentRequest], nil
}
