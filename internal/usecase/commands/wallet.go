package commands

import (
	"context"
	"time"

	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/platform/payment"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPackageNotFound        = errs.New("package not found")
	ErrOrderNotFound          = errs.New("recharge order not found")
	ErrOrderOwnership         = errs.New("recharge order belongs to another dealer")
	ErrPaymentVerification    = errs.New("payment signature verification failed")
	ErrTestRechargeDisabled   = errs.New("test recharge is disabled")
	ErrWalletNotFound         = errs.New("wallet not found")
	ErrPaymentAlreadyCaptured = errs.New("payment already captured")
)

type InitiateRechargeResult struct {
	OrderID     string
	Amount      int64
	Currency    string
	KeyID       string
	PackageName string
}

type VerifyRechargeInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

type WalletCommands interface {
	InitiateRecharge(ctx context.Context, dealerID, packageID uuid.UUID) (*InitiateRechargeResult, error)
	// VerifyRecharge settles a gateway payment exactly once and credits
	// base plus bonus.
	VerifyRecharge(ctx context.Context, dealerID uuid.UUID, input VerifyRechargeInput) error
	// TestRecharge credits a package without payment. Dev flag only.
	TestRecharge(ctx context.Context, dealerID, packageID uuid.UUID) error
}

type walletCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway payment.Gateway
	payCfg  config.PaymentConfig
	clk     clock.Clock
}

func NewWalletCommands(uow shared.UnitOfWork, gateway payment.Gateway, payCfg config.PaymentConfig, clk clock.Clock) WalletCommands {
	return &walletCommandsImpl{
		uow:     uow,
		gateway: gateway,
		payCfg:  payCfg,
		clk:     clk,
	}
}

func (c *walletCommandsImpl) InitiateRecharge(ctx context.Context, dealerID, packageID uuid.UUID) (*InitiateRechargeResult, error) {
	now := c.clk.Now()

	var result *InitiateRechargeResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pkg, err := tx.Packages().FindByID(ctx, packageID)
		if err != nil || !pkg.Active() {
			return errs.Mark(err, ErrPackageNotFound)
		}

		order, err := c.gateway.CreateOrder(ctx, pkg.PriceAmount(), pkg.Currency(), dealerID.String())
		if err != nil {
			return err
		}

		record := wallet.NewRechargeOrder(dealerID, packageID, order.GatewayOrderID, order.Amount, order.Currency, now)
		if err := tx.RechargeOrders().Create(ctx, record); err != nil {
			return err
		}

		result = &InitiateRechargeResult{
			OrderID:     order.GatewayOrderID,
			Amount:      order.Amount,
			Currency:    order.Currency,
			KeyID:       order.KeyID,
			PackageName: pkg.Name(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *walletCommandsImpl) VerifyRecharge(ctx context.Context, dealerID uuid.UUID, input VerifyRechargeInput) error {
	if !c.gateway.VerifySignature(input.GatewayOrderID, input.PaymentID, input.Signature) {
		return ErrPaymentVerification
	}

	now := c.clk.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		order, err := tx.RechargeOrders().FindByGatewayOrderID(ctx, input.GatewayOrderID)
		if err != nil {
			return errs.Mark(err, ErrOrderNotFound)
		}
		if !order.BelongsTo(dealerID) {
			return ErrOrderOwnership
		}

		settled, err := tx.RechargeOrders().MarkPaid(ctx, order.ID(), input.PaymentID)
		if err != nil {
			return err
		}
		if !settled {
			// Replayed verify call; credits were already granted.
			return ErrPaymentAlreadyCaptured
		}

		pkg, err := tx.Packages().FindByID(ctx, order.PackageID())
		if err != nil {
			return errs.Mark(err, ErrPackageNotFound)
		}

		ref := input.PaymentID
		return c.credit(ctx, tx, dealerID, pkg, wallet.ReasonPackagePurchase, &ref, now)
	})
}

func (c *walletCommandsImpl) TestRecharge(ctx context.Context, dealerID, packageID uuid.UUID) error {
	if !c.payCfg.DevMode {
		return ErrTestRechargeDisabled
	}

	now := c.clk.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pkg, err := tx.Packages().FindByID(ctx, packageID)
		if err != nil || !pkg.Active() {
			return errs.Mark(err, ErrPackageNotFound)
		}
		return c.credit(ctx, tx, dealerID, pkg, wallet.ReasonTestRecharge, nil, now)
	})
}

// credit locks the wallet, applies base credits plus any bonus, and
// appends the matching ledger rows.
func (c *walletCommandsImpl) credit(ctx context.Context, tx shared.Tx, dealerID uuid.UUID, pkg *wallet.CreditPackage, reason wallet.Reason, referenceID *string, now time.Time) error {
	w, err := tx.Wallets().FindByDealerIDForUpdate(ctx, dealerID)
	if err != nil {
		return errs.Mark(err, ErrWalletNotFound)
	}

	// The ledger itself is idempotent per reference: a payment id that
	// already credited this wallet never credits it twice, independent
	// of the order-state guard.
	if referenceID != nil {
		exists, err := tx.Wallets().TransactionExistsByReference(ctx, w.ID(), wallet.TxCredit, *referenceID)
		if err != nil {
			return err
		}
		if exists {
			return ErrPaymentAlreadyCaptured
		}
	}

	if err := w.Credit(pkg.Credits(), now); err != nil {
		return err
	}
	credit, err := wallet.NewTransaction(w.ID(), wallet.TxCredit, pkg.Credits(), reason, referenceID, now)
	if err != nil {
		return err
	}
	if err := tx.Wallets().AppendTransaction(ctx, credit); err != nil {
		return err
	}

	if pkg.BonusCredits() > 0 {
		if err := w.Credit(pkg.BonusCredits(), now); err != nil {
			return err
		}
		bonus, err := wallet.NewTransaction(w.ID(), wallet.TxCredit, pkg.BonusCredits(), wallet.ReasonPromoBonus, referenceID, now)
		if err != nil {
			return err
		}
		if err := tx.Wallets().AppendTransaction(ctx, bonus); err != nil {
			return err
		}
	}

	return tx.Wallets().SaveBalances(ctx, w)
}
