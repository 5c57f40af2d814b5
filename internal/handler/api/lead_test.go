//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/handler/api"
	"tyreplus-backend/internal/handler/middleware"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LeadHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	customerID    uuid.UUID
	leadCommands  *stubLeadCommands
	offerCommands *stubOfferCommands
	leadQueries   *stubLeadQueries
}

func (s *LeadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
	s.customerID = uuid.New()

	s.leadCommands = &stubLeadCommands{}
	s.offerCommands = &stubOfferCommands{}
	s.leadQueries = &stubLeadQueries{}

	h := api.NewLeadHandler(s.leadCommands, s.offerCommands, s.leadQueries)
	auth := testAuth(s.customerID, identity.RoleCustomer)
	s.router.POST("/leads", auth, h.Create)
	s.router.GET("/leads", auth, h.List)
	s.router.GET("/leads/:id/offers", auth, h.ListOffers)
	s.router.POST("/leads/:id/select", auth, h.SelectOffer)
}

func TestLeadHandlerSuite(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}

func validLeadBody() map[string]any {
	return map[string]any{
		"vehicleType":     "Car",
		"tyreType":        "Tubeless",
		"tyreBrand":       "MRF",
		"vehicleModel":    "Swift",
		"locationArea":    "Koramangala",
		"locationPincode": "560034",
	}
}

func (s *LeadHandlerTestSuite) TestCreate() {
	s.Run("created", func() {
		leadID := uuid.New()
		s.leadCommands.create = func(_ context.Context, customerID uuid.UUID, input commands.CreateLeadInput) (uuid.UUID, error) {
			s.Equal(s.customerID, customerID)
			s.Equal("560034", input.LocationPincode)
			return leadID, nil
		}

		w := doJSON(s.T(), s.router, http.MethodPost, "/leads", validLeadBody(), nil)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		body := decodeBody(s.T(), w)
		assert.Equal(s.T(), leadID.String(), body["id"])
	})

	s.Run("binding rejects a bad pincode", func() {
		body := validLeadBody()
		body["locationPincode"] = "5600"
		w := doJSON(s.T(), s.router, http.MethodPost, "/leads", body, nil)
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})

	s.Run("domain validation maps to 400", func() {
		s.leadCommands.create = func(_ context.Context, _ uuid.UUID, _ commands.CreateLeadInput) (uuid.UUID, error) {
			return uuid.Nil, commands.ErrLeadValidation
		}
		w := doJSON(s.T(), s.router, http.MethodPost, "/leads", validLeadBody(), nil)
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}

func (s *LeadHandlerTestSuite) TestList() {
	s.leadQueries.listByCustomer = func(_ context.Context, customerID uuid.UUID, page queries.Page) ([]*queries.LeadView, error) {
		s.Equal(s.customerID, customerID)
		return []*queries.LeadView{{ID: uuid.New(), Status: "VERIFIED"}}, nil
	}

	w := doJSON(s.T(), s.router, http.MethodGet, "/leads", nil, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	body := decodeBody(s.T(), w)
	leads, ok := body["leads"].([]any)
	require.True(s.T(), ok)
	assert.Len(s.T(), leads, 1)
}

func (s *LeadHandlerTestSuite) TestListOffers() {
	leadID := uuid.New()
	url := "/leads/" + leadID.String() + "/offers"

	s.Run("ok", func() {
		s.leadQueries.listOffersForLead = func(_ context.Context, customerID, gotLeadID uuid.UUID) ([]*queries.OfferView, error) {
			s.Equal(s.customerID, customerID)
			s.Equal(leadID, gotLeadID)
			return []*queries.OfferView{{ID: uuid.New(), LeadID: leadID}}, nil
		}

		w := doJSON(s.T(), s.router, http.MethodGet, url, nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code)
		body := decodeBody(s.T(), w)
		offers, ok := body["offers"].([]any)
		require.True(s.T(), ok)
		assert.Len(s.T(), offers, 1)
	})

	s.Run("someone else's lead maps to 403", func() {
		s.leadQueries.listOffersForLead = func(_ context.Context, _, _ uuid.UUID) ([]*queries.OfferView, error) {
			return nil, queries.ErrNotLeadOwner
		}

		w := doJSON(s.T(), s.router, http.MethodGet, url, nil, nil)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("missing lead maps to 404", func() {
		s.leadQueries.listOffersForLead = func(_ context.Context, _, _ uuid.UUID) ([]*queries.OfferView, error) {
			return nil, infra.WrapRepoErr("lead not found", nil, infra.KindNotFound)
		}

		w := doJSON(s.T(), s.router, http.MethodGet, url, nil, nil)
		assert.Equal(s.T(), http.StatusNotFound, w.Code)
	})
}

func (s *LeadHandlerTestSuite) TestSelectOffer() {
	leadID := uuid.New()
	offerID := uuid.New()
	url := "/leads/" + leadID.String() + "/select"
	reqBody := map[string]any{"offerId": offerID.String()}

	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "selected", expectCode: http.StatusNoContent},
		{name: "someone else won already", err: commands.ErrAlreadySelected, expectCode: http.StatusConflict},
		{name: "not the owner", err: commands.ErrNotLeadOwner, expectCode: http.StatusForbidden},
		{name: "offer from another lead", err: commands.ErrOfferLeadMismatch, expectCode: http.StatusBadRequest},
		{name: "offer missing", err: commands.ErrOfferNotFound, expectCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.offerCommands.selectOffer = func(_ context.Context, customerID, gotLeadID, gotOfferID uuid.UUID) error {
				s.Equal(s.customerID, customerID)
				s.Equal(leadID, gotLeadID)
				s.Equal(offerID, gotOfferID)
				return tt.err
			}

			w := doJSON(s.T(), s.router, http.MethodPost, url, reqBody, nil)
			assert.Equal(s.T(), tt.expectCode, w.Code)
		})
	}

	s.Run("malformed offer id", func() {
		w := doJSON(s.T(), s.router, http.MethodPost, url, map[string]any{"offerId": "nope"}, nil)
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}
