package response

import (
	"tyreplus-backend/internal/usecase/commands"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type SendOtpResponse struct {
	Message string `json:"message"`
	// Otp is populated in dev mode only.
	Otp *string `json:"otp,omitempty"`
}

type RefreshResponse struct {
	Token string `json:"token"`
}

func NewLoginResponse(result *commands.LoginResult) LoginResponse {
	return LoginResponse{
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: UserResponse{
			ID:   result.Identity.ID,
			Name: result.Identity.Name,
			Role: result.Identity.Role,
		},
	}
}
