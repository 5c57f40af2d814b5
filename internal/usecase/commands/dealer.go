package commands

import (
	"context"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrProfileValidation = errs.New("invalid dealer profile")

type UpdateProfileInput struct {
	BusinessName string
	OwnerName    string
	Email        *string
	Address      string
}

type DealerCommands interface {
	UpdateProfile(ctx context.Context, dealerID uuid.UUID, input UpdateProfileInput) error
}

type dealerCommandsImpl struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewDealerCommands(uow shared.UnitOfWork, clk clock.Clock) DealerCommands {
	return &dealerCommandsImpl{uow: uow, clk: clk}
}

func (c *dealerCommandsImpl) UpdateProfile(ctx context.Context, dealerID uuid.UUID, input UpdateProfileInput) error {
	now := c.clk.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ident, err := tx.Identities().FindByID(ctx, dealerID)
		if err != nil {
			return errs.Mark(err, ErrIdentityNotFound)
		}

		profile, err := identity.NewDealerProfile(dealerID, input.BusinessName, input.OwnerName, input.Address, now)
		if err != nil {
			return errs.Mark(err, ErrProfileValidation)
		}
		if err := tx.DealerProfiles().Upsert(ctx, profile); err != nil {
			return err
		}

		email := ident.Email()
		if input.Email != nil {
			email = input.Email
		}
		return tx.Identities().UpdateContact(ctx, dealerID, input.OwnerName, email)
	})
}
