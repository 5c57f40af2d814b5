package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/offer"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OfferRepository struct {
	db db.DBTX
}

func NewOfferRepository(dbtx db.DBTX) *OfferRepository {
	return &OfferRepository{db: dbtx}
}

// Create relies on the unique (lead_id, dealer_id) index; a second bid by
// the same dealer comes back as DUPLICATE_KEY.
func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO offers (id, lead_id, dealer_id, price, condition, notes, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID(), o.LeadID(), o.DealerID(), o.Price(), o.Condition(), o.Notes(), o.Images(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	var (
		leadID    uuid.UUID
		dealerID  uuid.UUID
		price     int64
		condition string
		notes     string
		images    []string
		createdAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT lead_id, dealer_id, price, condition, notes, images, created_at
		FROM offers
		WHERE id = $1`, id,
	).Scan(&leadID, &dealerID, &price, &condition, &notes, &images, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}
	return offer.Reconstruct(id, leadID, dealerID, price, condition, notes, images, createdAt), nil
}
