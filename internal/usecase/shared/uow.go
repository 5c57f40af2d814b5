package shared

import (
	"context"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/domain/offer"
	"tyreplus-backend/internal/domain/otp"
	"tyreplus-backend/internal/domain/token"
	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error
}

type Tx interface {
	Identities() IdentityRepository
	DealerProfiles() DealerProfileRepository
	OtpChallenges() OtpChallengeRepository
	RefreshTokens() RefreshTokenRepository
	Leads() LeadRepository
	Offers() OfferRepository
	Wallets() WalletRepository
	RechargeOrders() RechargeOrderRepository
	Packages() PackageRepository
	DB() db.DBTX
}

type IdentityRepository interface {
	Create(ctx context.Context, ident *identity.Identity) error
	FindByID(ctx context.Context, id uuid.UUID) (*identity.Identity, error)
	FindByMobileAndRole(ctx context.Context, mobile identity.Mobile, role identity.Role) (*identity.Identity, error)
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateContact(ctx context.Context, id uuid.UUID, name string, email *string) error
}

type DealerProfileRepository interface {
	Upsert(ctx context.Context, profile *identity.DealerProfile) error
	FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*identity.DealerProfile, error)
}

type OtpChallengeRepository interface {
	Create(ctx context.Context, challenge *otp.Challenge) error
	FindActiveByMobile(ctx context.Context, mobile identity.Mobile) (*otp.Challenge, error)
	// SupersedeActive consumes any live challenge so a fresh one becomes
	// the single active challenge for the mobile.
	SupersedeActive(ctx context.Context, mobile identity.Mobile) error
	// DecrementAttempts burns one attempt atomically and returns the
	// remaining budget after the decrement.
	DecrementAttempts(ctx context.Context, id uuid.UUID) (int, error)
	// Consume marks the challenge used; returns false when another request
	// already consumed it.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, refresh *token.Refresh) error
	FindByHash(ctx context.Context, tokenHash string) (*token.Refresh, error)
	// RevokeByHash is idempotent: revoking an unknown or already revoked
	// token is not an error.
	RevokeByHash(ctx context.Context, tokenHash string) error
}

type LeadRepository interface {
	Create(ctx context.Context, l *lead.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lead.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status) error
	// Select assigns the winning dealer iff no dealer was selected yet;
	// returns false when the slot was already taken.
	Select(ctx context.Context, leadID, dealerID uuid.UUID) (bool, error)
}

type OfferRepository interface {
	// Create inserts the offer; a second offer by the same dealer on the
	// same lead surfaces as a DUPLICATE_KEY repository error.
	Create(ctx context.Context, o *offer.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
}

type WalletRepository interface {
	Create(ctx context.Context, w *wallet.Wallet) error
	FindByDealerID(ctx context.Context, dealerID uuid.UUID) (*wallet.Wallet, error)
	// FindByDealerIDForUpdate locks the wallet row so concurrent debits
	// serialize.
	FindByDealerIDForUpdate(ctx context.Context, dealerID uuid.UUID) (*wallet.Wallet, error)
	SaveBalances(ctx context.Context, w *wallet.Wallet) error
	AppendTransaction(ctx context.Context, t *wallet.Transaction) error
	TransactionExistsByReference(ctx context.Context, walletID uuid.UUID, txType wallet.TxType, referenceID string) (bool, error)
}

type RechargeOrderRepository interface {
	Create(ctx context.Context, o *wallet.RechargeOrder) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*wallet.RechargeOrder, error)
	// MarkPaid flips CREATED to PAID once; returns false when the order
	// was already settled.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) (bool, error)
}

type PackageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*wallet.CreditPackage, error)
	ListActive(ctx context.Context) ([]*wallet.CreditPackage, error)
}
