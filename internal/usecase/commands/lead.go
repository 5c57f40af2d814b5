package commands

import (
	"context"

	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound           = errs.New("lead not found")
	ErrLeadValidation         = errs.New("invalid lead")
	ErrInvalidStatus          = errs.New("invalid lead status")
	ErrInvalidStateTransition = errs.New("invalid lead state transition")
	ErrNotSelectedDealer      = errs.New("dealer is not selected for this lead")
)

type CreateLeadInput struct {
	VehicleType     string
	TyreType        string
	TyreBrand       string
	VehicleModel    string
	LocationArea    string
	LocationPincode string
}

type LeadCommands interface {
	Create(ctx context.Context, customerID uuid.UUID, input CreateLeadInput) (uuid.UUID, error)
	// UpdateStatus lets the selected dealer move a lead through the
	// post-selection stages (FOLLOW_UP, CONVERTED, CLOSED).
	UpdateStatus(ctx context.Context, dealerID, leadID uuid.UUID, rawStatus string) error
}

type leadCommandsImpl struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewLeadCommands(uow shared.UnitOfWork, clk clock.Clock) LeadCommands {
	return &leadCommandsImpl{uow: uow, clk: clk}
}

// Create persists the lead and verifies it immediately: the customer is
// already OTP-authenticated, so there is no separate moderation step.
func (c *leadCommandsImpl) Create(ctx context.Context, customerID uuid.UUID, input CreateLeadInput) (uuid.UUID, error) {
	now := c.clk.Now()

	var leadID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		customer, err := tx.Identities().FindByID(ctx, customerID)
		if err != nil {
			return errs.Mark(err, ErrIdentityNotFound)
		}

		l, err := lead.New(customerID, customer.Mobile(), lead.Spec{
			VehicleType:     input.VehicleType,
			TyreType:        input.TyreType,
			TyreBrand:       input.TyreBrand,
			VehicleModel:    input.VehicleModel,
			LocationArea:    input.LocationArea,
			LocationPincode: input.LocationPincode,
		}, now)
		if err != nil {
			return errs.Mark(err, ErrLeadValidation)
		}
		if err := l.Verify(now); err != nil {
			return errs.Mark(err, ErrInvalidStateTransition)
		}

		if err := tx.Leads().Create(ctx, l); err != nil {
			return err
		}
		leadID = l.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return leadID, nil
}

func (c *leadCommandsImpl) UpdateStatus(ctx context.Context, dealerID, leadID uuid.UUID, rawStatus string) error {
	next, err := lead.NewStatus(rawStatus)
	if err != nil {
		return errs.Mark(err, ErrInvalidStatus)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Leads().FindByIDForUpdate(ctx, leadID)
		if err != nil {
			return errs.Mark(err, ErrLeadNotFound)
		}

		if !l.IsSelectedDealer(dealerID) {
			return ErrNotSelectedDealer
		}
		if err := l.TransitionTo(next); err != nil {
			return errs.Mark(err, ErrInvalidStateTransition)
		}

		return tx.Leads().UpdateStatus(ctx, leadID, l.Status())
	})
}
