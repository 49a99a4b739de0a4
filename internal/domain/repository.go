package domain

import "context"

// CampaignRepository defines access methods for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) (*Campaign, error)
	GetByID(ctx context.Context, id string) (*Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*Campaign, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*Campaign, error)
	ListByOwner(ctx context.Context, userID string) ([]Campaign, error)
}

// ContributionRepository handles contribution persistence. Contributions are
// insert-only; there is no update or delete path.
type ContributionRepository interface {
	Create(ctx context.Context, contribution *Contribution) (*Contribution, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]Contribution, error)
}

// ProfileRepository persists payment identities. Upsert converges concurrent
// provisioning calls for the same user on the same stored alias.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}

// PendingInvoiceRepository tracks issued invoices awaiting settlement.
type PendingInvoiceRepository interface {
	Create(ctx context.Context, inv *PendingInvoice) error
	ListPending(ctx context.Context, limit int) ([]PendingInvoice, error)
	MarkState(ctx context.Context, paymentHash string, state InvoiceState) error
}
