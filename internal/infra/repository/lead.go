package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LeadRepository struct {
	db db.DBTX
}

func NewLeadRepository(dbtx db.DBTX) *LeadRepository {
	return &LeadRepository{db: dbtx}
}

const leadColumns = `
	l.id, l.customer_id, i.mobile, l.vehicle_type, l.tyre_type, l.tyre_brand,
	l.vehicle_model, l.location_area, l.location_pincode, l.status,
	l.lead_cost, l.selected_dealer_id, l.created_at, l.verified_at`

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	spec := l.Spec()
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (id, customer_id, vehicle_type, tyre_type, tyre_brand, vehicle_model,
			location_area, location_pincode, status, lead_cost, selected_dealer_id, created_at, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		l.ID(), l.CustomerID(), spec.VehicleType, spec.TyreType, spec.TyreBrand,
		spec.VehicleModel, spec.LocationArea, spec.LocationPincode,
		l.Status().String(), l.UnlockCost(), l.SelectedDealerID(), l.CreatedAt(), l.VerifiedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create lead", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads l
		JOIN identities i ON i.id = l.customer_id
		WHERE l.id = $1`, id)
	return scanLead(row)
}

// FindByIDForUpdate locks only the lead row; the identities join is done
// separately to keep FOR UPDATE off the joined table.
func (r *LeadRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	var customerID uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT customer_id FROM leads WHERE id = $1 FOR UPDATE`, id,
	).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("lead not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock lead", err)
	}
	return r.FindByID(ctx, id)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads SET status = $2 WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update lead status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lead not found", nil, infra.KindNotFound)
	}
	return nil
}

// Select is the single-winner conditional update: first caller flips the
// NULL selected_dealer_id, everyone after sees zero rows. The status
// predicate keeps terminal leads out even when nothing was selected.
func (r *LeadRepository) Select(ctx context.Context, leadID, dealerID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads
		SET selected_dealer_id = $2, status = $3
		WHERE id = $1 AND selected_dealer_id IS NULL
			AND status IN ($4, $5)`,
		leadID, dealerID, lead.StatusDealerSelected.String(),
		lead.StatusOfferReceived.String(), lead.StatusFollowUp.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to select dealer for lead", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var (
		id               uuid.UUID
		customerID       uuid.UUID
		mobile           string
		spec             lead.Spec
		status           string
		leadCost         int
		selectedDealerID *uuid.UUID
		createdAt        time.Time
		verifiedAt       *time.Time
	)
	err := row.Scan(
		&id, &customerID, &mobile, &spec.VehicleType, &spec.TyreType, &spec.TyreBrand,
		&spec.VehicleModel, &spec.LocationArea, &spec.LocationPincode, &status,
		&leadCost, &selectedDealerID, &createdAt, &verifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("lead not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan lead", err)
	}
	return lead.Reconstruct(
		id, customerID, identity.Mobile(mobile), spec, lead.Status(status),
		leadCost, selectedDealerID, createdAt, verifiedAt,
	), nil
}
