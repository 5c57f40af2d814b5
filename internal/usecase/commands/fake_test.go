//go:build unit

package commands_test

import (
	"context"
	"sync"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/domain/offer"
	"tyreplus-backend/internal/domain/otp"
	"tyreplus-backend/internal/domain/token"
	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW runs the transactional closure against in-memory repositories.
// There is no rollback: tests assert on observable outcomes, not on
// partial-write recovery, which belongs to the real database layer.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: newFakeTx()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	identities     *fakeIdentityRepo
	dealerProfiles *fakeDealerProfileRepo
	otpChallenges  *fakeOtpRepo
	refreshTokens  *fakeRefreshTokenRepo
	leads          *fakeLeadRepo
	offers         *fakeOfferRepo
	wallets        *fakeWalletRepo
	rechargeOrders *fakeRechargeOrderRepo
	packages       *fakePackageRepo
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		identities:     &fakeIdentityRepo{byID: map[uuid.UUID]*identity.Identity{}},
		dealerProfiles: &fakeDealerProfileRepo{byIdentity: map[uuid.UUID]*identity.DealerProfile{}},
		otpChallenges:  &fakeOtpRepo{},
		refreshTokens:  &fakeRefreshTokenRepo{byHash: map[string]*token.Refresh{}},
		leads:          &fakeLeadRepo{byID: map[uuid.UUID]*lead.Lead{}},
		offers:         &fakeOfferRepo{byID: map[uuid.UUID]*offer.Offer{}, byLeadDealer: map[string]bool{}},
		wallets:        &fakeWalletRepo{byDealer: map[uuid.UUID]*wallet.Wallet{}},
		rechargeOrders: &fakeRechargeOrderRepo{byGatewayID: map[string]*wallet.RechargeOrder{}},
		packages:       &fakePackageRepo{byID: map[uuid.UUID]*wallet.CreditPackage{}},
	}
}

func (t *fakeTx) Identities() shared.IdentityRepository          { return t.identities }
func (t *fakeTx) DealerProfiles() shared.DealerProfileRepository { return t.dealerProfiles }
func (t *fakeTx) OtpChallenges() shared.OtpChallengeRepository   { return t.otpChallenges }
func (t *fakeTx) RefreshTokens() shared.RefreshTokenRepository   { return t.refreshTokens }
func (t *fakeTx) Leads() shared.LeadRepository                   { return t.leads }
func (t *fakeTx) Offers() shared.OfferRepository                 { return t.offers }
func (t *fakeTx) Wallets() shared.WalletRepository               { return t.wallets }
func (t *fakeTx) RechargeOrders() shared.RechargeOrderRepository { return t.rechargeOrders }
func (t *fakeTx) Packages() shared.PackageRepository             { return t.packages }
func (t *fakeTx) DB() db.DBTX                                    { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeIdentityRepo struct {
	byID map[uuid.UUID]*identity.Identity
}

func (r *fakeIdentityRepo) Create(_ context.Context, ident *identity.Identity) error {
	r.byID[ident.ID()] = ident
	return nil
}

func (r *fakeIdentityRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Identity, error) {
	ident, ok := r.byID[id]
	if !ok {
		return nil, notFound("identity not found")
	}
	return ident, nil
}

func (r *fakeIdentityRepo) FindByMobileAndRole(_ context.Context, mobile identity.Mobile, role identity.Role) (*identity.Identity, error) {
	for _, ident := range r.byID {
		if ident.Mobile() == mobile && ident.Role() == role {
			return ident, nil
		}
	}
	return nil, notFound("identity not found")
}

func (r *fakeIdentityRepo) FindByEmail(_ context.Context, email string) (*identity.Identity, error) {
	for _, ident := range r.byID {
		if ident.Email() != nil && *ident.Email() == email {
			return ident, nil
		}
	}
	return nil, notFound("identity not found")
}

func (r *fakeIdentityRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	ident, ok := r.byID[id]
	if !ok {
		return notFound("identity not found")
	}
	r.byID[id] = identity.Reconstruct(ident.ID(), ident.Mobile(), ident.Role(), ident.Name(),
		ident.Email(), &passwordHash, ident.VerifiedAt(), ident.CreatedAt())
	return nil
}

func (r *fakeIdentityRepo) UpdateContact(_ context.Context, id uuid.UUID, name string, email *string) error {
	ident, ok := r.byID[id]
	if !ok {
		return notFound("identity not found")
	}
	r.byID[id] = identity.Reconstruct(ident.ID(), ident.Mobile(), ident.Role(), name,
		email, ident.PasswordHash(), ident.VerifiedAt(), ident.CreatedAt())
	return nil
}

type fakeDealerProfileRepo struct {
	byIdentity map[uuid.UUID]*identity.DealerProfile
}

func (r *fakeDealerProfileRepo) Upsert(_ context.Context, profile *identity.DealerProfile) error {
	r.byIdentity[profile.IdentityID()] = profile
	return nil
}

func (r *fakeDealerProfileRepo) FindByIdentityID(_ context.Context, identityID uuid.UUID) (*identity.DealerProfile, error) {
	p, ok := r.byIdentity[identityID]
	if !ok {
		return nil, notFound("dealer profile not found")
	}
	return p, nil
}

type otpRecord struct {
	challenge *otp.Challenge
	attempts  int
	consumed  bool
}

type fakeOtpRepo struct {
	mu      sync.Mutex
	records []*otpRecord
}

func (r *fakeOtpRepo) Create(_ context.Context, challenge *otp.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &otpRecord{challenge: challenge, attempts: challenge.AttemptsRemaining()})
	return nil
}

func (r *fakeOtpRepo) FindActiveByMobile(_ context.Context, mobile identity.Mobile) (*otp.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.challenge.Mobile() == mobile && !rec.consumed {
			c := rec.challenge
			return otp.Reconstruct(c.ID(), c.Mobile(), c.CodeHash(), rec.attempts, rec.consumed, c.CreatedAt(), c.ExpiresAt()), nil
		}
	}
	return nil, notFound("no active otp challenge")
}

func (r *fakeOtpRepo) SupersedeActive(_ context.Context, mobile identity.Mobile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.challenge.Mobile() == mobile {
			rec.consumed = true
		}
	}
	return nil
}

func (r *fakeOtpRepo) DecrementAttempts(_ context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.challenge.ID() == id && rec.attempts > 0 && !rec.consumed {
			rec.attempts--
			return rec.attempts, nil
		}
	}
	return 0, notFound("otp challenge not found")
}

func (r *fakeOtpRepo) Consume(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.challenge.ID() == id {
			if rec.consumed {
				return false, nil
			}
			rec.consumed = true
			return true, nil
		}
	}
	return false, notFound("otp challenge not found")
}

type fakeRefreshTokenRepo struct {
	byHash map[string]*token.Refresh
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, refresh *token.Refresh) error {
	r.byHash[refresh.TokenHash()] = refresh
	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*token.Refresh, error) {
	refresh, ok := r.byHash[tokenHash]
	if !ok {
		return nil, notFound("refresh token not found")
	}
	return refresh, nil
}

func (r *fakeRefreshTokenRepo) RevokeByHash(_ context.Context, tokenHash string) error {
	if refresh, ok := r.byHash[tokenHash]; ok {
		refresh.Revoke()
	}
	return nil
}

type fakeLeadRepo struct {
	byID map[uuid.UUID]*lead.Lead
}

func (r *fakeLeadRepo) Create(_ context.Context, l *lead.Lead) error {
	r.byID[l.ID()] = l
	return nil
}

func (r *fakeLeadRepo) FindByID(_ context.Context, id uuid.UUID) (*lead.Lead, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, notFound("lead not found")
	}
	return l, nil
}

func (r *fakeLeadRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeLeadRepo) UpdateStatus(_ context.Context, id uuid.UUID, status lead.Status) error {
	l, ok := r.byID[id]
	if !ok {
		return notFound("lead not found")
	}
	r.byID[id] = lead.Reconstruct(l.ID(), l.CustomerID(), l.CustomerMobile(), l.Spec(),
		status, l.UnlockCost(), l.SelectedDealerID(), l.CreatedAt(), l.VerifiedAt())
	return nil
}

func (r *fakeLeadRepo) Select(_ context.Context, leadID, dealerID uuid.UUID) (bool, error) {
	l, ok := r.byID[leadID]
	if !ok {
		return false, notFound("lead not found")
	}
	if l.SelectedDealerID() != nil {
		return false, nil
	}
	if l.Status() != lead.StatusOfferReceived && l.Status() != lead.StatusFollowUp {
		return false, nil
	}
	r.byID[leadID] = lead.Reconstruct(l.ID(), l.CustomerID(), l.CustomerMobile(), l.Spec(),
		lead.StatusDealerSelected, l.UnlockCost(), &dealerID, l.CreatedAt(), l.VerifiedAt())
	return true, nil
}

type fakeOfferRepo struct {
	byID         map[uuid.UUID]*offer.Offer
	byLeadDealer map[string]bool
}

func offerKey(leadID, dealerID uuid.UUID) string {
	return leadID.String() + "|" + dealerID.String()
}

func (r *fakeOfferRepo) Create(_ context.Context, o *offer.Offer) error {
	key := offerKey(o.LeadID(), o.DealerID())
	if r.byLeadDealer[key] {
		return infra.WrapRepoErr("duplicate offer", nil, infra.KindDuplicateKey)
	}
	r.byLeadDealer[key] = true
	r.byID[o.ID()] = o
	return nil
}

func (r *fakeOfferRepo) FindByID(_ context.Context, id uuid.UUID) (*offer.Offer, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, notFound("offer not found")
	}
	return o, nil
}

type fakeWalletRepo struct {
	byDealer     map[uuid.UUID]*wallet.Wallet
	transactions []*wallet.Transaction
}

func (r *fakeWalletRepo) Create(_ context.Context, w *wallet.Wallet) error {
	r.byDealer[w.DealerID()] = w
	return nil
}

func (r *fakeWalletRepo) FindByDealerID(_ context.Context, dealerID uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.byDealer[dealerID]
	if !ok {
		return nil, notFound("wallet not found")
	}
	return w, nil
}

// FindByDealerIDForUpdate hands out a copy so mutations only land via
// SaveBalances, mirroring the locked row read in the real repository.
func (r *fakeWalletRepo) FindByDealerIDForUpdate(_ context.Context, dealerID uuid.UUID) (*wallet.Wallet, error) {
	w, ok := r.byDealer[dealerID]
	if !ok {
		return nil, notFound("wallet not found")
	}
	return wallet.Reconstruct(w.ID(), w.DealerID(), w.Balance(), w.TotalEarned(), w.TotalSpent(), w.UpdatedAt()), nil
}

func (r *fakeWalletRepo) SaveBalances(_ context.Context, w *wallet.Wallet) error {
	r.byDealer[w.DealerID()] = w
	return nil
}

func (r *fakeWalletRepo) AppendTransaction(_ context.Context, t *wallet.Transaction) error {
	r.transactions = append(r.transactions, t)
	return nil
}

func (r *fakeWalletRepo) TransactionExistsByReference(_ context.Context, walletID uuid.UUID, txType wallet.TxType, referenceID string) (bool, error) {
	for _, t := range r.transactions {
		if t.WalletID() == walletID && t.Type() == txType && t.ReferenceID() != nil && *t.ReferenceID() == referenceID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRechargeOrderRepo struct {
	byGatewayID map[string]*wallet.RechargeOrder
}

func (r *fakeRechargeOrderRepo) Create(_ context.Context, o *wallet.RechargeOrder) error {
	r.byGatewayID[o.GatewayOrderID()] = o
	return nil
}

func (r *fakeRechargeOrderRepo) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*wallet.RechargeOrder, error) {
	o, ok := r.byGatewayID[gatewayOrderID]
	if !ok {
		return nil, notFound("recharge order not found")
	}
	return o, nil
}

func (r *fakeRechargeOrderRepo) MarkPaid(_ context.Context, id uuid.UUID, paymentID string) (bool, error) {
	for key, o := range r.byGatewayID {
		if o.ID() == id {
			if o.Status() != wallet.OrderCreated {
				return false, nil
			}
			r.byGatewayID[key] = wallet.ReconstructRechargeOrder(o.ID(), o.DealerID(), o.PackageID(),
				o.GatewayOrderID(), o.Amount(), o.Currency(), wallet.OrderPaid, &paymentID, o.CreatedAt())
			return true, nil
		}
	}
	return false, notFound("recharge order not found")
}

type fakePackageRepo struct {
	byID map[uuid.UUID]*wallet.CreditPackage
}

func (r *fakePackageRepo) FindByID(_ context.Context, id uuid.UUID) (*wallet.CreditPackage, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, notFound("package not found")
	}
	return p, nil
}

func (r *fakePackageRepo) ListActive(_ context.Context) ([]*wallet.CreditPackage, error) {
	var out []*wallet.CreditPackage
	for _, p := range r.byID {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}
