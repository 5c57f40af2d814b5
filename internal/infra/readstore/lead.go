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

type LeadReadStore struct {
	db db.DBTX
}

func NewLeadReadStore(dbtx db.DBTX) *LeadReadStore {
	return &LeadReadStore{db: dbtx}
}

func (r *LeadReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*queries.LeadView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.vehicle_type, l.tyre_type, l.tyre_brand, l.vehicle_model,
			l.location_area, l.location_pincode, l.status, l.selected_dealer_id,
			(SELECT count(*) FROM offers o WHERE o.lead_id = l.id) AS offer_count,
			l.created_at
		FROM leads l
		WHERE l.customer_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3`, customerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customer leads", err)
	}
	defer rows.Close()

	var result []*queries.LeadView
	for rows.Next() {
		v, err := scanLeadView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan lead view", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate customer leads", err)
	}
	return result, nil
}

func (r *LeadReadStore) FindByIDForCustomer(ctx context.Context, customerID, leadID uuid.UUID) (*queries.LeadView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT l.id, l.vehicle_type, l.tyre_type, l.tyre_brand, l.vehicle_model,
			l.location_area, l.location_pincode, l.status, l.selected_dealer_id,
			(SELECT count(*) FROM offers o WHERE o.lead_id = l.id) AS offer_count,
			l.created_at
		FROM leads l
		WHERE l.id = $1 AND l.customer_id = $2`, leadID, customerID)
	v, err := scanLeadView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("lead not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer lead", err)
	}
	return v, nil
}

func (r *LeadReadStore) FindOwner(ctx context.Context, leadID uuid.UUID) (uuid.UUID, error) {
	var customerID uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT customer_id FROM leads WHERE id = $1`, leadID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, infra.WrapRepoErr("lead not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find lead owner", err)
	}
	return customerID, nil
}

func (r *LeadReadStore) FindOffersByLead(ctx context.Context, leadID uuid.UUID) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.lead_id, o.dealer_id, i.name, dp.business_name,
			o.price, o.condition, o.notes, o.images,
			(l.selected_dealer_id = o.dealer_id) AS selected,
			o.created_at
		FROM offers o
		JOIN leads l ON l.id = o.lead_id
		JOIN identities i ON i.id = o.dealer_id
		LEFT JOIN dealer_profiles dp ON dp.identity_id = o.dealer_id
		WHERE o.lead_id = $1
		ORDER BY o.price ASC, o.created_at ASC`, leadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers for lead", err)
	}
	defer rows.Close()

	var result []*queries.OfferView
	for rows.Next() {
		var (
			v        queries.OfferView
			selected *bool
		)
		err := rows.Scan(&v.ID, &v.LeadID, &v.DealerID, &v.DealerName, &v.BusinessName,
			&v.Price, &v.Condition, &v.Notes, &v.Images, &selected, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer view", err)
		}
		v.Selected = selected != nil && *selected
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return result, nil
}

// FindDiscoverable lists open leads the dealer has not bid on yet. The
// customer mobile never appears here.
func (r *LeadReadStore) FindDiscoverable(ctx context.Context, dealerID uuid.UUID, limit, offset int32) ([]*queries.DealerLeadView, error) {
	return r.queryDealerLeads(ctx, `
		SELECT l.id, l.vehicle_type, l.tyre_type, l.tyre_brand, l.vehicle_model,
			l.location_area, l.location_pincode, l.status, l.lead_cost,
			NULL::text AS customer_mobile,
			FALSE AS has_my_offer,
			FALSE AS is_selected,
			l.created_at
		FROM leads l
		WHERE l.status IN ('VERIFIED', 'OFFER_RECEIVED')
			AND NOT EXISTS (
				SELECT 1 FROM offers o WHERE o.lead_id = l.id AND o.dealer_id = $1
			)
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3`, dealerID, limit, offset)
}

// FindUnlocked lists leads the dealer paid to bid on; the mobile is
// revealed only where the dealer won.
func (r *LeadReadStore) FindUnlocked(ctx context.Context, dealerID uuid.UUID, limit, offset int32) ([]*queries.DealerLeadView, error) {
	return r.queryDealerLeads(ctx, `
		SELECT l.id, l.vehicle_type, l.tyre_type, l.tyre_brand, l.vehicle_model,
			l.location_area, l.location_pincode, l.status, l.lead_cost,
			CASE WHEN l.selected_dealer_id = $1 THEN i.mobile END AS customer_mobile,
			TRUE AS has_my_offer,
			(l.selected_dealer_id = $1) AS is_selected,
			l.created_at
		FROM leads l
		JOIN identities i ON i.id = l.customer_id
		WHERE EXISTS (
			SELECT 1 FROM offers o WHERE o.lead_id = l.id AND o.dealer_id = $1
		)
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3`, dealerID, limit, offset)
}

func (r *LeadReadStore) FindByIDForDealer(ctx context.Context, dealerID, leadID uuid.UUID) (*queries.DealerLeadView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT l.id, l.vehicle_type, l.tyre_type, l.tyre_brand, l.vehicle_model,
			l.location_area, l.location_pincode, l.status, l.lead_cost,
			CASE WHEN l.selected_dealer_id = $1 THEN i.mobile END AS customer_mobile,
			EXISTS (
				SELECT 1 FROM offers o WHERE o.lead_id = l.id AND o.dealer_id = $1
			) AS has_my_offer,
			(l.selected_dealer_id = $1) AS is_selected,
			l.created_at
		FROM leads l
		JOIN identities i ON i.id = l.customer_id
		WHERE l.id = $2`, dealerID, leadID)
	v, err := scanDealerLeadView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("lead not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find dealer lead", err)
	}
	return v, nil
}

func (r *LeadReadStore) queryDealerLeads(ctx context.Context, query string, args ...any) ([]*queries.DealerLeadView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dealer leads", err)
	}
	defer rows.Close()

	var result []*queries.DealerLeadView
	for rows.Next() {
		v, err := scanDealerLeadView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan dealer lead view", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate dealer leads", err)
	}
	return result, nil
}

func scanLeadView(row pgx.Row) (*queries.LeadView, error) {
	var v queries.LeadView
	err := row.Scan(&v.ID, &v.VehicleType, &v.TyreType, &v.TyreBrand, &v.VehicleModel,
		&v.LocationArea, &v.LocationPincode, &v.Status, &v.SelectedDealerID,
		&v.OfferCount, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanDealerLeadView(row pgx.Row) (*queries.DealerLeadView, error) {
	var (
		v          queries.DealerLeadView
		isSelected *bool
	)
	err := row.Scan(&v.ID, &v.VehicleType, &v.TyreType, &v.TyreBrand, &v.VehicleModel,
		&v.LocationArea, &v.LocationPincode, &v.Status, &v.LeadCost,
		&v.CustomerMobile, &v.HasMyOffer, &isSelected, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.IsSelected = isSelected != nil && *isSelected
	return &v, nil
}
