package repo

import (
	"context"

	"crowdpay/internal/domain"
	"crowdpay/internal/infra"
	"crowdpay/internal/sqlinline"

	"github.com/jackc/pgx/v5"
)

// ProfileRepositoryPG implements domain.ProfileRepository backed by PostgreSQL.
// Upsert is keyed on user_id, so concurrent provisioning calls for the same
// user converge on the same stored alias.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProfileRepository creates a new profile repo.
func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// Upsert inserts or overwrites the payment identity for a user.
func (r *ProfileRepositoryPG) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertProfile,
		profile.UserID,
		string(profile.WalletType),
		profile.PaymentAlias,
	)
	return scanProfile(row)
}

// GetByUserID fetches the profile for a user.
func (r *ProfileRepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByUserID, userID)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var walletType string
	if err := row.Scan(&p.UserID, &walletType, &p.PaymentAlias, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.WalletType = domain.WalletType(walletType)
	return &p, nil
}

var _ domain.ProfileRepository = (*ProfileRepositoryPG)(nil)
