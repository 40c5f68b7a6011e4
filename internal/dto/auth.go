package dto

type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type EmailAndPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Code      string `json:"code"      validate:"required,len=6,numeric"`
	Challenge string `json:"challenge" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// StepUpResponse is returned by login and signup when the credential check
// passed but tokens are withheld until the emailed code is verified. The
// challenge handle is single-use and expires with the code.
type StepUpResponse struct {
	StepUpPending bool   `json:"stepUpPending"`
	Challenge     string `json:"challenge"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	DeviceID string `json:"deviceId"`
}
