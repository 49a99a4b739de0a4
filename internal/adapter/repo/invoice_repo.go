package repo

import (
	"context"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/sqlinline"
)

// PendingInvoiceRepositoryPG implements domain.PendingInvoiceRepository backed
// by PostgreSQL.
type PendingInvoiceRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPendingInvoiceRepository creates a new pending invoice repo.
func NewPendingInvoiceRepository(sql infra.SQLExecutor) *PendingInvoiceRepositoryPG {
	return &PendingInvoiceRepositoryPG{sql: sql}
}

// Create records an issued invoice awaiting settlement.
func (r *PendingInvoiceRepositoryPG) Create(ctx context.Context, inv *domain.PendingInvoice) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPendingInvoice,
		inv.PaymentHash,
		inv.CampaignID,
		inv.Amount,
		inv.PaymentRequest,
		inv.ContributorName,
		inv.ExpiresAt,
	)
	return err
}

// ListPending returns the oldest unsettled invoices, limited by the input value.
func (r *PendingInvoiceRepositoryPG) ListPending(ctx context.Context, limit int) ([]domain.PendingInvoice, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPendingInvoices, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PendingInvoice
	for rows.Next() {
		var inv domain.PendingInvoice
		var state string
		if err := rows.Scan(&inv.PaymentHash, &inv.CampaignID, &inv.Amount, &inv.PaymentRequest, &inv.ContributorName, &state, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
			return nil, err
		}
		inv.State = domain.InvoiceState(state)
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkState moves a pending invoice to a terminal state. A no-op when the
// invoice was already settled by a concurrent worker.
func (r *PendingInvoiceRepositoryPG) MarkState(ctx context.Context, paymentHash string, state domain.InvoiceState) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkInvoiceState, paymentHash, string(state))
	return err
}

var _ domain.PendingInvoiceRepository = (*PendingInvoiceRepositoryPG)(nil)
