package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/nimbus-sync/nimbus/internal/hdl"
	mid "github.com/nimbus-sync/nimbus/internal/hdl/http/middleware"
	"github.com/nimbus-sync/nimbus/internal/hdl/http/utils"
	"github.com/nimbus-sync/nimbus/internal/hdl/validation"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
	"go.uber.org/zap"
)

func (h *Handler) RegisterUserRoutes() {
	h.Router.Post("/users/exists", h.existsUser)
	h.Router.With(mid.Auth(h.au)).Get("/users/me", h.getMe)
	h.Router.With(mid.Auth(h.au)).Put("/users/me", h.updateMe)
	h.Router.With(mid.Auth(h.au)).Delete("/users/me", h.deleteMe)
}

// existsUser godoc
//
//	@Summary		Check if an account exists by email
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.CheckEmailRequest	true	"Email payload"
//	@Success		200		{object}	dto.ExistsUserResponse
//	@Failure		500		{object}	utils.ErrorResponse	"internal error"
//	@Router			/users/exists [post]
func (h *Handler) existsUser(w http.ResponseWriter, r *http.Request) {
	req := &dto.CheckEmailRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.IsUserExist(r.Context(), req.Email)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// getMe godoc
//
//	@Summary		Get the current account profile
//	@Tags			User
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	utils.ErrorResponse	"unauthorized"
//	@Failure		404	{object}	utils.ErrorResponse	"not found"
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	res, err := h.ctrl.GetUserByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// updateMe godoc
//
//	@Summary		Update the current account profile
//	@Description	Accepts multipart form data with an optional avatar file
//	@Tags			User
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name	formData	string	true	"Display name"
//	@Param			avatar	formData	file	false	"Avatar image"
//	@Success		200		"Updated"
//	@Failure		400		{object}	utils.ErrorResponse	"decode error"
//	@Failure		401		{object}	utils.ErrorResponse	"unauthorized"
//	@Security		ApiKeyAuth
//	@Router			/users/me [put]
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	if err := r.ParseMultipartForm(config.MaxMemory); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	req := &dto.UpdateUserRequest{
		Name:   r.FormValue("name"),
		Avatar: r.FormValue("avatar"),
	}
	if err := validation.Struct(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}

	file := &s3.UploadFileRequest{}
	if err := utils.ParseFileField(r, "avatar", file); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}
	if len(file.File) == 0 {
		file = nil
	}

	if err := h.ctrl.UpdateUser(r.Context(), uid, req, file); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// deleteMe godoc
//
//	@Summary		Delete the current account
//	@Description	Revokes every session and purges all synced data before removing the account
//	@Tags			User
//	@Produce		json
//	@Success		204	"Deleted"
//	@Failure		401	{object}	utils.ErrorResponse	"unauthorized"
//	@Security		ApiKeyAuth
//	@Router			/users/me [delete]
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	if err := h.ctrl.DeleteUser(r.Context(), uid); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		zap.L().Error("failed to delete account", zap.String("uid", uid.String()), zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}
