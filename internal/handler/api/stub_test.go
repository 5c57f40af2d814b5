//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Function-field stubs for the command and query ports. Each test wires
// only the methods it exercises; an unexpected call panics on the nil
// field, which is the failure we want.

type stubAuthCommands struct {
	sendOtp           func(ctx context.Context, mobile string, role identity.Role) (*commands.SendOtpResult, error)
	verifyOtp         func(ctx context.Context, mobile, code string, role identity.Role) (*commands.LoginResult, error)
	loginWithPassword func(ctx context.Context, identifier, plainPassword string) (*commands.LoginResult, error)
	refresh           func(ctx context.Context, refreshToken string) (string, error)
	logout            func(ctx context.Context, refreshToken string) error
	setPassword       func(ctx context.Context, identityID uuid.UUID, plainPassword string) error
	completeDealer    func(ctx context.Context, input commands.RegisterDealerInput) (*commands.LoginResult, error)
}

func (s *stubAuthCommands) SendOtp(ctx context.Context, mobile string, role identity.Role) (*commands.SendOtpResult, error) {
	return s.sendOtp(ctx, mobile, role)
}

func (s *stubAuthCommands) VerifyOtp(ctx context.Context, mobile, code string, role identity.Role) (*commands.LoginResult, error) {
	return s.verifyOtp(ctx, mobile, code, role)
}

func (s *stubAuthCommands) LoginWithPassword(ctx context.Context, identifier, plainPassword string) (*commands.LoginResult, error) {
	return s.loginWithPassword(ctx, identifier, plainPassword)
}

func (s *stubAuthCommands) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refresh(ctx, refreshToken)
}

func (s *stubAuthCommands) Logout(ctx context.Context, refreshToken string) error {
	return s.logout(ctx, refreshToken)
}

func (s *stubAuthCommands) SetPassword(ctx context.Context, identityID uuid.UUID, plainPassword string) error {
	return s.setPassword(ctx, identityID, plainPassword)
}

func (s *stubAuthCommands) CompleteDealerRegistration(ctx context.Context, input commands.RegisterDealerInput) (*commands.LoginResult, error) {
	return s.completeDealer(ctx, input)
}

type stubLeadCommands struct {
	create       func(ctx context.Context, customerID uuid.UUID, input commands.CreateLeadInput) (uuid.UUID, error)
	updateStatus func(ctx context.Context, dealerID, leadID uuid.UUID, rawStatus string) error
}

func (s *stubLeadCommands) Create(ctx context.Context, customerID uuid.UUID, input commands.CreateLeadInput) (uuid.UUID, error) {
	return s.create(ctx, customerID, input)
}

func (s *stubLeadCommands) UpdateStatus(ctx context.Context, dealerID, leadID uuid.UUID, rawStatus string) error {
	return s.updateStatus(ctx, dealerID, leadID, rawStatus)
}

type stubOfferCommands struct {
	submit      func(ctx context.Context, dealerID, leadID uuid.UUID, input commands.SubmitOfferInput) (uuid.UUID, error)
	selectOffer func(ctx context.Context, customerID, leadID, offerID uuid.UUID) error
}

func (s *stubOfferCommands) Submit(ctx context.Context, dealerID, leadID uuid.UUID, input commands.SubmitOfferInput) (uuid.UUID, error) {
	return s.submit(ctx, dealerID, leadID, input)
}

func (s *stubOfferCommands) SelectOffer(ctx context.Context, customerID, leadID, offerID uuid.UUID) error {
	return s.selectOffer(ctx, customerID, leadID, offerID)
}

type stubDealerCommands struct {
	updateProfile func(ctx context.Context, dealerID uuid.UUID, input commands.UpdateProfileInput) error
}

func (s *stubDealerCommands) UpdateProfile(ctx context.Context, dealerID uuid.UUID, input commands.UpdateProfileInput) error {
	return s.updateProfile(ctx, dealerID, input)
}

type stubWalletCommands struct {
	initiateRecharge func(ctx context.Context, dealerID, packageID uuid.UUID) (*commands.InitiateRechargeResult, error)
	verifyRecharge   func(ctx context.Context, dealerID uuid.UUID, input commands.VerifyRechargeInput) error
	testRecharge     func(ctx context.Context, dealerID, packageID uuid.UUID) error
}

func (s *stubWalletCommands) InitiateRecharge(ctx context.Context, dealerID, packageID uuid.UUID) (*commands.InitiateRechargeResult, error) {
	return s.initiateRecharge(ctx, dealerID, packageID)
}

func (s *stubWalletCommands) VerifyRecharge(ctx context.Context, dealerID uuid.UUID, input commands.VerifyRechargeInput) error {
	return s.verifyRecharge(ctx, dealerID, input)
}

func (s *stubWalletCommands) TestRecharge(ctx context.Context, dealerID, packageID uuid.UUID) error {
	return s.testRecharge(ctx, dealerID, packageID)
}

type stubLeadQueries struct {
	listByCustomer     func(ctx context.Context, customerID uuid.UUID, page queries.Page) ([]*queries.LeadView, error)
	getByIDForCustomer func(ctx context.Context, customerID, leadID uuid.UUID) (*queries.LeadView, error)
	listOffersForLead  func(ctx context.Context, customerID, leadID uuid.UUID) ([]*queries.OfferView, error)
	listDiscoverable   func(ctx context.Context, dealerID uuid.UUID, page queries.Page) ([]*queries.DealerLeadView, error)
	listUnlocked       func(ctx context.Context, dealerID uuid.UUID, page queries.Page) ([]*queries.DealerLeadView, error)
	getByIDForDealer   func(ctx context.Context, dealerID, leadID uuid.UUID) (*queries.DealerLeadView, error)
}

func (s *stubLeadQueries) ListByCustomer(ctx context.Context, customerID uuid.UUID, page queries.Page) ([]*queries.LeadView, error) {
	return s.listByCustomer(ctx, customerID, page)
}

func (s *stubLeadQueries) GetByIDForCustomer(ctx context.Context, customerID, leadID uuid.UUID) (*queries.LeadView, error) {
	return s.getByIDForCustomer(ctx, customerID, leadID)
}

func (s *stubLeadQueries) ListOffersForLead(ctx context.Context, customerID, leadID uuid.UUID) ([]*queries.OfferView, error) {
	return s.listOffersForLead(ctx, customerID, leadID)
}

func (s *stubLeadQueries) ListDiscoverable(ctx context.Context, dealerID uuid.UUID, page queries.Page) ([]*queries.DealerLeadView, error) {
	return s.listDiscoverable(ctx, dealerID, page)
}

func (s *stubLeadQueries) ListUnlocked(ctx context.Context, dealerID uuid.UUID, page queries.Page) ([]*queries.DealerLeadView, error) {
	return s.listUnlocked(ctx, dealerID, page)
}

func (s *stubLeadQueries) GetByIDForDealer(ctx context.Context, dealerID, leadID uuid.UUID) (*queries.DealerLeadView, error) {
	return s.getByIDForDealer(ctx, dealerID, leadID)
}

type stubDealerQueries struct {
	getProfile   func(ctx context.Context, dealerID uuid.UUID) (*queries.DealerProfileView, error)
	getDashboard func(ctx context.Context, dealerID uuid.UUID) (*queries.DashboardView, error)
}

func (s *stubDealerQueries) GetProfile(ctx context.Context, dealerID uuid.UUID) (*queries.DealerProfileView, error) {
	return s.getProfile(ctx, dealerID)
}

func (s *stubDealerQueries) GetDashboard(ctx context.Context, dealerID uuid.UUID) (*queries.DashboardView, error) {
	return s.getDashboard(ctx, dealerID)
}

type stubWalletQueries struct {
	getWallet    func(ctx context.Context, dealerID uuid.UUID) (*queries.WalletView, error)
	listPackages func(ctx context.Context) ([]*queries.PackageView, error)
}

func (s *stubWalletQueries) GetWallet(ctx context.Context, dealerID uuid.UUID) (*queries.WalletView, error) {
	return s.getWallet(ctx, dealerID)
}

func (s *stubWalletQueries) ListPackages(ctx context.Context) ([]*queries.PackageView, error) {
	return s.listPackages(ctx)
}

// testAuth injects an authenticated subject the way the auth middleware
// would.
func testAuth(subjectID uuid.UUID, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("subject_id", subjectID)
		c.Set("subject_role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
