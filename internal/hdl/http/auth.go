package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nimbus-sync/nimbus/internal/auth"
	"github.com/nimbus-sync/nimbus/internal/auth/google"
	"github.com/nimbus-sync/nimbus/internal/auth/jwt"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/nimbus-sync/nimbus/internal/hdl"
	mid "github.com/nimbus-sync/nimbus/internal/hdl/http/middleware"
	"github.com/nimbus-sync/nimbus/internal/hdl/http/utils"
	"github.com/nimbus-sync/nimbus/internal/smtp"
	"go.uber.org/zap"
)

func (h *Handler) RegisterAuthRoutes() {
	h.Router.With(mid.Device).Post("/auth/signup", h.signup)
	h.Router.With(mid.Device).Post("/auth/login", h.authenticate)
	h.Router.Post("/auth/2fa/send", h.sendStepUpCode)
	h.Router.With(mid.Device).Post("/auth/2fa/verify", h.verifyStepUpCode)
	h.Router.Get("/auth/google", h.googleRedirect)
	h.Router.With(mid.Device).Get("/auth/google/callback", h.googleCallback)
	h.Router.With(mid.Device).Post("/auth/refresh", h.refresh)
	h.Router.Post("/auth/logout", h.logout)
	h.Router.Post("/auth/password/forgot", h.forgotPassword)
	h.Router.Post("/auth/password/reset", h.resetPassword)
}

// signup godoc
//
//	@Summary		Create an account
//	@Description	Registers the account and starts step-up verification
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SignUpRequest	true	"Signup payload"
//	@Success		201		{object}	dto.StepUpResponse
//	@Failure		400		{object}	utils.ErrorResponse	"already exists"
//	@Failure		500		{object}	utils.ErrorResponse	"internal error"
//	@Router			/auth/signup [post]
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	req := &dto.SignUpRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	tokens, step, err := h.ctrl.SignUp(r.Context(), &d, req)
	if err != nil {
		if errors.Is(err, ctrl.ErrAlreadyExists) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		if errors.Is(err, smtp.ErrDeliveryFailed) {
			utils.ErrResponse(w, http.StatusBadGateway, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	if step != nil {
		utils.SuccessResponse(w, http.StatusCreated, step)
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, tokens)
}

// authenticate godoc
//
//	@Summary		Authenticate using email & password
//	@Description	Verifies credentials and starts step-up verification
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.EmailAndPasswordRequest	true	"Login credentials"
//	@Success		200		{object}	dto.StepUpResponse
//	@Failure		400		{object}	utils.ErrorResponse	"invalid credentials"
//	@Failure		500		{object}	utils.ErrorResponse	"internal error"
//	@Router			/auth/login [post]
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	req := &dto.EmailAndPasswordRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.Authenticate(r.Context(), &d, req)
	if err != nil {
		// A 400, not a 401: no session is being refused here, the submitted
		// credentials themselves are bad.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		if errors.Is(err, smtp.ErrDeliveryFailed) {
			utils.ErrResponse(w, http.StatusBadGateway, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// sendStepUpCode godoc
//
//	@Summary		Resend the step-up verification code
//	@Description	Rotates the pending challenge secret and emails a fresh code
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SendCodeRequest	true	"Email payload"
//	@Success		200		{object}	dto.StepUpResponse
//	@Failure		400		{object}	utils.ErrorResponse	"account not found"
//	@Failure		502		{object}	utils.ErrorResponse	"delivery failed"
//	@Router			/auth/2fa/send [post]
func (h *Handler) sendStepUpCode(w http.ResponseWriter, r *http.Request) {
	req := &dto.SendCodeRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.SendStepUpCode(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		if errors.Is(err, smtp.ErrDeliveryFailed) {
			utils.ErrResponse(w, http.StatusBadGateway, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// verifyStepUpCode godoc
//
//	@Summary		Complete step-up verification
//	@Description	Validates the emailed code and issues the token pair
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.VerifyCodeRequest	true	"Verification payload"
//	@Success		200		{object}	dto.AuthResponse
//	@Failure		400		{object}	utils.ErrorResponse	"no challenge / expired / invalid code / bad handle"
//	@Router			/auth/2fa/verify [post]
func (h *Handler) verifyStepUpCode(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	req := &dto.VerifyCodeRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.VerifyStepUpCode(r.Context(), &d, req)
	if err != nil {
		switch {
		case errors.Is(err, ctrl.ErrNotFound),
			errors.Is(err, ctrl.ErrNoChallenge),
			errors.Is(err, ctrl.ErrChallengeExpired),
			errors.Is(err, ctrl.ErrCodeIsNotValid),
			errors.Is(err, auth.ErrInvalidCredentials):
			utils.ErrResponse(w, http.StatusBadRequest, err)
		default:
			utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		}
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// googleRedirect godoc
//
//	@Summary		Start Google OAuth
//	@Description	Redirects the browser to the provider's consent screen
//	@Tags			Authentication
//	@Success		302
//	@Failure		503	{object}	utils.ErrorResponse	"oauth not configured"
//	@Router			/auth/google [get]
func (h *Handler) googleRedirect(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.ctrl.GoogleAuthURL()
	if err != nil {
		utils.ErrResponse(w, http.StatusServiceUnavailable, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// googleCallback godoc
//
//	@Summary		Google OAuth callback
//	@Description	Exchanges the authorization code and redirects back to the client with tokens
//	@Tags			Authentication
//	@Success		302
//	@Router			/auth/google/callback [get]
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoCode)
		return
	}

	tokens, step, err := h.ctrl.GoogleCallback(r.Context(), &d, code)
	if err != nil {
		if errors.Is(err, google.ErrExchangeFailed) || errors.Is(err, google.ErrDisabled) {
			http.Redirect(w, r, h.clientURL+"/login?error=auth_failed", http.StatusFound)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	if step != nil {
		http.Redirect(
			w, r,
			fmt.Sprintf("%s/oauth-callback?stepUp=true&challenge=%s", h.clientURL, url.QueryEscape(step.Challenge)),
			http.StatusFound,
		)
		return
	}

	http.Redirect(
		w, r,
		fmt.Sprintf(
			"%s/oauth-callback?accessToken=%s&refreshToken=%s&deviceId=%s",
			h.clientURL,
			url.QueryEscape(tokens.Access),
			url.QueryEscape(tokens.Refresh),
			url.QueryEscape(tokens.DeviceID),
		),
		http.StatusFound,
	)
}

// refresh godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Validates the refresh token against the ledger and issues a new pair
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			X-Device-Id	header	string				false	"Device id minted at login"
//	@Param			body		body	dto.RefreshRequest	true	"Refresh payload"
//	@Success		200			{object}	dto.TokenPair
//	@Failure		401			{object}	utils.ErrorResponse	"token expired / invalid / not recognized"
//	@Router			/auth/refresh [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	req := &dto.RefreshRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.Refresh(r.Context(), &d, r.Header.Get(mid.DeviceIDHeader), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenRevoked),
			errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrInvalidToken):
			utils.ErrResponse(w, http.StatusUnauthorized, err)
		default:
			utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		}
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// forgotPassword godoc
//
//	@Summary		Request a password reset link
//	@Description	Emails a single-use reset link. The response does not reveal whether the account exists.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ForgotPasswordRequest	true	"Email payload"
//	@Success		200		"Sent if the account exists"
//	@Failure		502		{object}	utils.ErrorResponse	"delivery failed"
//	@Router			/auth/password/forgot [post]
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	req := &dto.ForgotPasswordRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err := h.ctrl.RequestPasswordReset(r.Context(), req.Email); err != nil {
		if errors.Is(err, smtp.ErrDeliveryFailed) {
			utils.ErrResponse(w, http.StatusBadGateway, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// resetPassword godoc
//
//	@Summary		Reset the password with an emailed token
//	@Description	Redeems the single-use reset token, replaces the password and revokes every session
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ResetPasswordRequest	true	"Reset payload"
//	@Success		200		"Password replaced"
//	@Failure		400		{object}	utils.ErrorResponse	"invalid or expired reset token"
//	@Router			/auth/password/reset [post]
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	req := &dto.ResetPasswordRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err := h.ctrl.ResetPassword(r.Context(), req); err != nil {
		if errors.Is(err, ctrl.ErrResetTokenInvalid) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// logout godoc
//
//	@Summary		Logout
//	@Description	Revokes the ledger entry for the refresh token. Best effort.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RefreshRequest	true	"Refresh payload"
//	@Success		200		"Revoked"
//	@Router			/auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	req := &dto.RefreshRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err := h.ctrl.Logout(r.Context(), req); err != nil {
		zap.L().Warn("failed to revoke refresh token", zap.Error(err))
	}

	utils.StatusResponse(w, http.StatusOK)
}
