package api

import (
	"errors"
	"net/http"

	reqdto "tyreplus-backend/internal/handler/dto/request"
	resdto "tyreplus-backend/internal/handler/dto/response"
	"tyreplus-backend/internal/handler/httperr"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DealerHandler struct {
	leadCommands   commands.LeadCommands
	offerCommands  commands.OfferCommands
	dealerCommands commands.DealerCommands
	leadQueries    queries.LeadQueries
	dealerQueries  queries.DealerQueries
}

func NewDealerHandler(
	leadCommands commands.LeadCommands,
	offerCommands commands.OfferCommands,
	dealerCommands commands.DealerCommands,
	leadQueries queries.LeadQueries,
	dealerQueries queries.DealerQueries,
) *DealerHandler {
	return &DealerHandler{
		leadCommands:   leadCommands,
		offerCommands:  offerCommands,
		dealerCommands: dealerCommands,
		leadQueries:    leadQueries,
		dealerQueries:  dealerQueries,
	}
}

// @Summary List leads open for bidding
// @Tags dealer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.DealerLeadListResponse
// @Router /dealer/leads [get]
func (h *DealerHandler) ListDiscoverable(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)

	leads, err := h.leadQueries.ListDiscoverable(c.Request.Context(), dealerID, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list leads", nil)
		return
	}
	if leads == nil {
		leads = []*queries.DealerLeadView{}
	}

	c.JSON(http.StatusOK, resdto.DealerLeadListResponse{Leads: leads, Page: page.Number, Size: page.Size})
}

// @Summary List leads I have bid on
// @Tags dealer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.DealerLeadListResponse
// @Router /dealer/leads/unlocked [get]
func (h *DealerHandler) ListUnlocked(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)

	leads, err := h.leadQueries.ListUnlocked(c.Request.Context(), dealerID, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list leads", nil)
		return
	}
	if leads == nil {
		leads = []*queries.DealerLeadView{}
	}

	c.JSON(http.StatusOK, resdto.DealerLeadListResponse{Leads: leads, Page: page.Number, Size: page.Size})
}

// @Summary Get lead detail for a dealer
// @Tags dealer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.DealerLeadView
// @Router /dealer/leads/{id} [get]
func (h *DealerHandler) GetLead(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.leadQueries.GetByIDForDealer(c.Request.Context(), dealerID, leadID)
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

// @Summary Submit an offer on a lead
// @Tags dealer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitOfferRequest true "Offer request"
// @Success 201 {object} resdto.CreatedResponse
// @Router /dealer/leads/{id}/offers [post]
func (h *DealerHandler) SubmitOffer(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	offerID, err := h.offerCommands.Submit(c.Request.Context(), dealerID, leadID, commands.SubmitOfferInput{
		Price:     req.Price,
		Condition: req.Condition,
		Notes:     req.Notes,
		Images:    req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrLeadNotOpen):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Lead is not open for offers", nil)
		case errors.Is(err, commands.ErrOfferValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer details", nil)
		case errors.Is(err, commands.ErrInsufficientCredits):
			httperr.AbortWithCode(c, http.StatusBadRequest, err, "INSUFFICIENT_CREDITS", "Not enough credits to unlock this lead", nil)
		case errors.Is(err, commands.ErrDuplicateOffer):
			httperr.AbortWithError(c, http.StatusConflict, err, "Offer already submitted for this lead", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to submit offer", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: offerID})
}

// @Summary Update lead status after selection
// @Tags dealer
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.UpdateLeadStatusRequest true "Status request"
// @Success 204 "No Content"
// @Router /dealer/leads/{id}/status [patch]
func (h *DealerHandler) UpdateLeadStatus(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.leadCommands.UpdateStatus(c.Request.Context(), dealerID, leadID, req.Status); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown lead status", nil)
		case errors.Is(err, commands.ErrLeadNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Lead not found", nil)
		case errors.Is(err, commands.ErrNotSelectedDealer):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the selected dealer can update this lead", nil)
		case errors.Is(err, commands.ErrInvalidStateTransition):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status transition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update lead status", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get dealer profile
// @Tags dealer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.DealerProfileView
// @Router /dealer/profile [get]
func (h *DealerHandler) GetProfile(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	view, err := h.dealerQueries.GetProfile(c.Request.Context(), dealerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Profile not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to fetch profile", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Update dealer profile
// @Tags dealer
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.UpdateProfileRequest true "Profile request"
// @Success 204 "No Content"
// @Router /dealer/profile [put]
func (h *DealerHandler) UpdateProfile(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	var req reqdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err := h.dealerCommands.UpdateProfile(c.Request.Context(), dealerID, commands.UpdateProfileInput{
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		Address:      req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProfileValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid profile details", nil)
		case errors.Is(err, commands.ErrIdentityNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Account not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update profile", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Dealer dashboard counters
// @Tags dealer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.DashboardView
// @Router /dealer/dashboard [get]
func (h *DealerHandler) Dashboard(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	view, err := h.dealerQueries.GetDashboard(c.Request.Context(), dealerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to fetch dashboard", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}
