package readstore

import (
	"context"
	"errors"

	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DealerReadStore struct {
	db db.DBTX
}

func NewDealerReadStore(dbtx db.DBTX) *DealerReadStore {
	return &DealerReadStore{db: dbtx}
}

// FindProfile falls back to identity fields when the dealer never
// completed registration.
func (r *DealerReadStore) FindProfile(ctx context.Context, dealerID uuid.UUID) (*queries.DealerProfileView, error) {
	var (
		v            queries.DealerProfileView
		businessName *string
		ownerName    *string
		address      *string
		name         string
	)
	err := r.db.QueryRow(ctx, `
		SELECT i.name, i.email, i.mobile, dp.business_name, dp.owner_name, dp.address
		FROM identities i
		LEFT JOIN dealer_profiles dp ON dp.identity_id = i.id
		WHERE i.id = $1 AND i.role = 'dealer'`, dealerID,
	).Scan(&name, &v.Email, &v.Mobile, &businessName, &ownerName, &address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("dealer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find dealer profile", err)
	}

	v.OwnerName = name
	if ownerName != nil {
		v.OwnerName = *ownerName
	}
	if businessName != nil {
		v.BusinessName = *businessName
	}
	if address != nil {
		v.Address = *address
	}
	return &v, nil
}

// CountDashboard derives every counter from existing tables; the
// dashboard keeps no state of its own.
func (r *DealerReadStore) CountDashboard(ctx context.Context, dealerID uuid.UUID) (*queries.DashboardView, error) {
	var v queries.DashboardView
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM leads l
				WHERE l.status IN ('VERIFIED', 'OFFER_RECEIVED')
				AND NOT EXISTS (
					SELECT 1 FROM offers o WHERE o.lead_id = l.id AND o.dealer_id = $1
				)) AS available_leads,
			(SELECT count(*) FROM offers o WHERE o.dealer_id = $1) AS my_offers,
			(SELECT count(*) FROM offers o WHERE o.dealer_id = $1) AS unlocked_leads,
			COALESCE((SELECT w.balance FROM wallets w WHERE w.dealer_id = $1), 0) AS wallet_balance`,
		dealerID,
	).Scan(&v.AvailableLeads, &v.MyOffers, &v.UnlockedLeads, &v.WalletBalance)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count dashboard", err)
	}
	return &v, nil
}
