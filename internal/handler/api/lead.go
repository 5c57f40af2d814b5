package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "tyreplus-backend/internal/handler/dto/request"
	resdto "tyreplus-backend/internal/handler/dto/response"
	"tyreplus-backend/internal/handler/httperr"
	"tyreplus-backend/internal/handler/middleware"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeadHandler struct {
	leadCommands  commands.LeadCommands
	offerCommands commands.OfferCommands
	leadQueries   queries.LeadQueries
}

func NewLeadHandler(leadCommands commands.LeadCommands, offerCommands commands.OfferCommands, leadQueries queries.LeadQueries) *LeadHandler {
	return &LeadHandler{
		leadCommands:  leadCommands,
		offerCommands: offerCommands,
		leadQueries:   leadQueries,
	}
}

// @Summary Create a tyre lead
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateLeadRequest true "Lead request"
// @Success 201 {object} resdto.CreatedResponse
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	customerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	var req reqdto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	leadID, err := h.leadCommands.Create(c.Request.Context(), customerID, commands.CreateLeadInput{
		VehicleType:     req.VehicleType,
		TyreType:        req.TyreType,
		TyreBrand:       req.TyreBrand,
		VehicleModel:    req.VehicleModel,
		LocationArea:    req.LocationArea,
		LocationPincode: req.LocationPincode,
	})
	if err != nil {
		if errors.Is(err, commands.ErrLeadValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lead details", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create lead", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: leadID})
}

// @Summary List my leads
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.LeadListResponse
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	customerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)

	leads, err := h.leadQueries.ListByCustomer(c.Request.Context(), customerID, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list leads", nil)
		return
	}
	if leads == nil {
		leads = []*queries.LeadView{}
	}

	c.JSON(http.StatusOK, resdto.LeadListResponse{Leads: leads, Page: page.Number, Size: page.Size})
}

// @Summary Get one of my leads
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.LeadView
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	customerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.leadQueries.GetByIDForCustomer(c.Request.Context(), customerID, leadID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to fetch lead", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List offers on my lead
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.OfferListResponse
// @Router /leads/{id}/offers [get]
func (h *LeadHandler) ListOffers(c *gin.Context) {
	customerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	offers, err := h.leadQueries.ListOffersForLead(c.Request.Context(), customerID, leadID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNotLeadOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Lead belongs to another customer", nil)
		case infra.IsKind(err, infra.KindNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list offers", nil)
		}
		return
	}
	if offers == nil {
		offers = []*queries.OfferView{}
	}

	c.JSON(http.StatusOK, resdto.OfferListResponse{Offers: offers})
}

// @Summary Select the winning offer
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.SelectOfferRequest true "Selection request"
// @Success 204 "No Content"
// @Router /leads/{id}/select [post]
func (h *LeadHandler) SelectOffer(c *gin.Context) {
	customerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.SelectOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer ID", nil)
		return
	}

	if err := h.offerCommands.SelectOffer(c.Request.Context(), customerID, leadID, offerID); err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrNotLeadOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Lead belongs to another customer", nil)
		case errors.Is(err, commands.ErrOfferNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
		case errors.Is(err, commands.ErrOfferLeadMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Offer does not belong to this lead", nil)
		case errors.Is(err, commands.ErrAlreadySelected):
			httperr.AbortWithError(c, http.StatusConflict, err, "A dealer was already selected", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to select offer", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func subjectOrAbort(c *gin.Context) (uuid.UUID, bool) {
	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrIdentityNotFound, "Not authenticated", nil)
		return uuid.Nil, false
	}
	return subjectID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageFromQuery(c *gin.Context) queries.Page {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return queries.NewPage(number, size)
}
