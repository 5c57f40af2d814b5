package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DealerProfileRepository struct {
	db db.DBTX
}

func NewDealerProfileRepository(dbtx db.DBTX) *DealerProfileRepository {
	return &DealerProfileRepository{db: dbtx}
}

func (r *DealerProfileRepository) Upsert(ctx context.Context, profile *identity.DealerProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dealer_profiles (id, identity_id, business_name, owner_name, address, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identity_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			owner_name = EXCLUDED.owner_name,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at`,
		profile.ID(), profile.IdentityID(), profile.BusinessName(),
		profile.OwnerName(), profile.Address(), profile.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert dealer profile", err)
	}
	return nil
}

func (r *DealerProfileRepository) FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*identity.DealerProfile, error) {
	var (
		id           uuid.UUID
		businessName string
		ownerName    string
		address      string
		updatedAt    time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, business_name, owner_name, address, updated_at
		FROM dealer_profiles
		WHERE identity_id = $1`, identityID,
	).Scan(&id, &businessName, &ownerName, &address, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("dealer profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find dealer profile", err)
	}
	return identity.ReconstructDealerProfile(id, identityID, businessName, ownerName, address, updatedAt), nil
}
