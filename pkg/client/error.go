package client

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoPendingStepUp  = errors.New("no step-up verification is pending")
	ErrResendCoolDown   = errors.New("wait before requesting another code")
	ErrSessionExpired   = errors.New("session expired, log in again")
)

// APIError carries the status code and message of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
