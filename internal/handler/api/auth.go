package api

import (
	"errors"
	"net/http"

	"tyreplus-backend/internal/domain/identity"
	reqdto "tyreplus-backend/internal/handler/dto/request"
	resdto "tyreplus-backend/internal/handler/dto/response"
	"tyreplus-backend/internal/handler/httperr"
	"tyreplus-backend/internal/handler/middleware"
	"tyreplus-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const refreshTokenHeader = "X-Refresh-Token"

type AuthHandler struct {
	auth commands.AuthCommands
}

func NewAuthHandler(auth commands.AuthCommands) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// @Summary Send customer login OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SendOtpRequest true "Send OTP request"
// @Success 200 {object} resdto.SendOtpResponse
// @Router /auth/customer/send-otp [post]
func (h *AuthHandler) CustomerSendOtp(c *gin.Context) {
	h.sendOtp(c, identity.RoleCustomer)
}

// @Summary Verify customer OTP and login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyOtpRequest true "Verify OTP request"
// @Success 200 {object} resdto.LoginResponse
// @Router /auth/customer/verify-otp [post]
func (h *AuthHandler) CustomerVerifyOtp(c *gin.Context) {
	h.verifyOtp(c, identity.RoleCustomer)
}

// @Summary Send dealer quick-login OTP
// @Tags auth
// @Router /auth/dealer/send-otp [post]
func (h *AuthHandler) DealerSendOtp(c *gin.Context) {
	h.sendOtp(c, identity.RoleDealer)
}

// @Summary Verify dealer OTP and login
// @Tags auth
// @Router /auth/dealer/verify-otp [post]
func (h *AuthHandler) DealerVerifyOtp(c *gin.Context) {
	h.verifyOtp(c, identity.RoleDealer)
}

func (h *AuthHandler) sendOtp(c *gin.Context, role identity.Role) {
	var req reqdto.SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.auth.SendOtp(c.Request.Context(), req.Mobile, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidMobile):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid mobile number", nil)
		case errors.Is(err, commands.ErrResendCooldown):
			httperr.AbortWithError(c, http.StatusTooManyRequests, err, "Please wait before requesting another OTP", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to send OTP", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SendOtpResponse{
		Message: "OTP sent",
		Otp:     result.EchoCode,
	})
}

func (h *AuthHandler) verifyOtp(c *gin.Context, role identity.Role) {
	var req reqdto.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.auth.VerifyOtp(c.Request.Context(), req.Mobile, req.Otp, role)
	if err != nil {
		abortOtpError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewLoginResponse(result))
}

// @Summary Dealer password login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.PasswordLoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Router /auth/dealer/login [post]
func (h *AuthHandler) DealerLogin(c *gin.Context) {
	var req reqdto.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.auth.LoginWithPassword(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Login failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.NewLoginResponse(result))
}

// @Summary Send dealer registration OTP
// @Tags auth
// @Router /auth/dealer/register/send-otp [post]
func (h *AuthHandler) DealerRegisterSendOtp(c *gin.Context) {
	h.sendOtp(c, identity.RoleDealer)
}

// @Summary Complete dealer registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterCompleteRequest true "Registration request"
// @Success 201 {object} resdto.LoginResponse
// @Router /auth/dealer/register/complete [post]
func (h *AuthHandler) DealerRegisterComplete(c *gin.Context) {
	var req reqdto.RegisterCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.auth.CompleteDealerRegistration(c.Request.Context(), commands.RegisterDealerInput{
		Mobile:       req.Mobile,
		Code:         req.Otp,
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		Address:      req.Address,
		Password:     req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailAlreadyRegistered):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		case errors.Is(err, commands.ErrAlreadyRegistered):
			httperr.AbortWithError(c, http.StatusConflict, err, "Mobile already registered", nil)
		default:
			abortOtpError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewLoginResponse(result))
}

// @Summary Refresh access token
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.RefreshResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := c.GetHeader(refreshTokenHeader)
	if refreshToken == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrInvalidRefreshToken, "Refresh token required", nil)
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRefreshTokenExpired):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Refresh token expired", nil)
		case errors.Is(err, commands.ErrInvalidRefreshToken), errors.Is(err, commands.ErrIdentityNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid refresh token", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to refresh token", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.RefreshResponse{Token: accessToken})
}

// @Summary Logout
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken := c.GetHeader(refreshTokenHeader); refreshToken != "" {
		if err := h.auth.Logout(c.Request.Context(), refreshToken); err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Logout failed", nil)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set account password
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/set-password [post]
func (h *AuthHandler) SetPassword(c *gin.Context) {
	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrIdentityNotFound, "Not authenticated", nil)
		return
	}

	var req reqdto.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.auth.SetPassword(c.Request.Context(), subjectID, req.Password); err != nil {
		if errors.Is(err, commands.ErrIdentityNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Account not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to set password", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortOtpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidMobile):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid mobile number", nil)
	case errors.Is(err, commands.ErrOtpNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "No active OTP for this mobile", nil)
	case errors.Is(err, commands.ErrOtpExpired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "OTP expired", nil)
	case errors.Is(err, commands.ErrOtpInvalid):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid OTP", nil)
	case errors.Is(err, commands.ErrOtpAttemptsExhausted):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Too many invalid attempts, request a new OTP", nil)
	case errors.Is(err, commands.ErrOtpAlreadyConsumed):
		httperr.AbortWithError(c, http.StatusConflict, err, "OTP already used", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Verification failed", nil)
	}
}
