package commands

import (
	"context"

	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/domain/offer"
	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLeadNotOpen         = errs.New("lead is not open for offers")
	ErrDuplicateOffer      = errs.New("offer already submitted for this lead")
	ErrInsufficientCredits = errs.New("insufficient credits")
	ErrOfferNotFound       = errs.New("offer not found")
	ErrOfferValidation     = errs.New("invalid offer")
	ErrOfferLeadMismatch   = errs.New("offer does not belong to this lead")
	ErrNotLeadOwner        = errs.New("lead does not belong to this customer")
	ErrAlreadySelected     = errs.New("a dealer was already selected for this lead")
)

type SubmitOfferInput struct {
	Price     int64
	Condition string
	Notes     string
	Images    []string
}

type OfferCommands interface {
	// Submit debits the lead cost and records the bid in one transaction;
	// a failure at any step rolls back all of it.
	Submit(ctx context.Context, dealerID, leadID uuid.UUID, input SubmitOfferInput) (uuid.UUID, error)
	// SelectOffer assigns the winning dealer, at most once per lead.
	SelectOffer(ctx context.Context, customerID, leadID, offerID uuid.UUID) error
}

type offerCommandsImpl struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewOfferCommands(uow shared.UnitOfWork, clk clock.Clock) OfferCommands {
	return &offerCommandsImpl{uow: uow, clk: clk}
}

func (c *offerCommandsImpl) Submit(ctx context.Context, dealerID, leadID uuid.UUID, input SubmitOfferInput) (uuid.UUID, error) {
	now := c.clk.Now()

	var offerID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Leads().FindByIDForUpdate(ctx, leadID)
		if err != nil {
			return errs.Mark(err, ErrLeadNotFound)
		}
		if !l.IsOpenForOffers() {
			return ErrLeadNotOpen
		}

		o, err := offer.New(leadID, dealerID, input.Price, input.Condition, input.Notes, input.Images, now)
		if err != nil {
			return errs.Mark(err, ErrOfferValidation)
		}

		// Wallet row lock serializes concurrent debits of this dealer.
		w, err := tx.Wallets().FindByDealerIDForUpdate(ctx, dealerID)
		if err != nil {
			return err
		}
		if err := w.Debit(int64(l.UnlockCost()), now); err != nil {
			return errs.Mark(err, ErrInsufficientCredits)
		}
		if err := tx.Wallets().SaveBalances(ctx, w); err != nil {
			return err
		}

		ref := o.ID().String()
		debit, err := wallet.NewTransaction(w.ID(), wallet.TxDebit, int64(l.UnlockCost()), wallet.ReasonLeadUnlock, &ref, now)
		if err != nil {
			return err
		}
		if err := tx.Wallets().AppendTransaction(ctx, debit); err != nil {
			return err
		}

		if err := tx.Offers().Create(ctx, o); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateOffer)
			}
			return err
		}

		// First offer bumps the lead; later ones leave it untouched.
		if l.Status() == lead.StatusVerified {
			l.MarkOfferReceived()
			if err := tx.Leads().UpdateStatus(ctx, leadID, l.Status()); err != nil {
				return err
			}
		}

		offerID = o.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return offerID, nil
}

func (c *offerCommandsImpl) SelectOffer(ctx context.Context, customerID, leadID, offerID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Leads().FindByID(ctx, leadID)
		if err != nil {
			return errs.Mark(err, ErrLeadNotFound)
		}
		if !l.IsOwnedBy(customerID) {
			return ErrNotLeadOwner
		}

		o, err := tx.Offers().FindByID(ctx, offerID)
		if err != nil {
			return errs.Mark(err, ErrOfferNotFound)
		}
		if o.LeadID() != leadID {
			return ErrOfferLeadMismatch
		}

		selected, err := tx.Leads().Select(ctx, leadID, o.DealerID())
		if err != nil {
			return err
		}
		if !selected {
			return ErrAlreadySelected
		}
		return nil
	})
}
