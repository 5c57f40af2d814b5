package request

type SendOtpRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

type VerifyOtpRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Otp    string `json:"otp" binding:"required"`
}

type PasswordLoginRequest struct {
	// Identifier is a mobile number or an email address.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterCompleteRequest struct {
	Mobile       string `json:"mobile" binding:"required"`
	Otp          string `json:"otp" binding:"required"`
	BusinessName string `json:"businessName" binding:"required"`
	OwnerName    string `json:"ownerName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Address      string `json:"address"`
	Password     string `json:"password" binding:"required,min=8"`
}
