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
	"github.com/google/uuid"
)

type WalletHandler struct {
	walletCommands commands.WalletCommands
	walletQueries  queries.WalletQueries
}

func NewWalletHandler(walletCommands commands.WalletCommands, walletQueries queries.WalletQueries) *WalletHandler {
	return &WalletHandler{
		walletCommands: walletCommands,
		walletQueries:  walletQueries,
	}
}

// @Summary Get wallet balance and recent transactions
// @Tags wallet
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.WalletView
// @Router /dealer/wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	view, err := h.walletQueries.GetWallet(c.Request.Context(), dealerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Wallet not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to fetch wallet", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List purchasable credit packages
// @Tags wallet
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.PackageListResponse
// @Router /dealer/wallet/packages [get]
func (h *WalletHandler) ListPackages(c *gin.Context) {
	packages, err := h.walletQueries.ListPackages(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list packages", nil)
		return
	}
	if packages == nil {
		packages = []*queries.PackageView{}
	}

	c.JSON(http.StatusOK, resdto.PackageListResponse{Packages: packages})
}

// @Summary Create a gateway order for a credit package
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.InitiateRechargeRequest true "Recharge request"
// @Success 200 {object} resdto.InitiateRechargeResponse
// @Router /dealer/wallet/recharge [post]
func (h *WalletHandler) InitiateRecharge(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	var req reqdto.InitiateRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid package ID", nil)
		return
	}

	result, err := h.walletCommands.InitiateRecharge(c.Request.Context(), dealerID, packageID)
	if err != nil {
		if errors.Is(err, commands.ErrPackageNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Package not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to initiate recharge", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.NewInitiateRechargeResponse(result))
}

// @Summary Verify gateway payment and credit wallet
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.VerifyRechargeRequest true "Verification request"
// @Success 204 "No Content"
// @Router /dealer/wallet/recharge/verify [post]
func (h *WalletHandler) VerifyRecharge(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	var req reqdto.VerifyRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err := h.walletCommands.VerifyRecharge(c.Request.Context(), dealerID, commands.VerifyRechargeInput{
		GatewayOrderID: req.OrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPaymentVerification):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Payment verification failed", nil)
		case errors.Is(err, commands.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Recharge order not found", nil)
		case errors.Is(err, commands.ErrOrderOwnership):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Order belongs to another account", nil)
		case errors.Is(err, commands.ErrPaymentAlreadyCaptured):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment already captured", nil)
		case errors.Is(err, commands.ErrPackageNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Package not found", nil)
		case errors.Is(err, commands.ErrWalletNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Wallet not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to verify recharge", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Credit a package without payment (dev only)
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Success 204 "No Content"
// @Router /dealer/wallet/test-recharge [post]
func (h *WalletHandler) TestRecharge(c *gin.Context) {
	dealerID, ok := subjectOrAbort(c)
	if !ok {
		return
	}

	var req reqdto.TestRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid package ID", nil)
		return
	}

	if err := h.walletCommands.TestRecharge(c.Request.Context(), dealerID, packageID); err != nil {
		switch {
		case errors.Is(err, commands.ErrTestRechargeDisabled):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrPackageNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Package not found", nil)
		case errors.Is(err, commands.ErrWalletNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Wallet not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to recharge", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
