package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/nimbus-sync/nimbus/internal/hdl"
	mid "github.com/nimbus-sync/nimbus/internal/hdl/http/middleware"
	"github.com/nimbus-sync/nimbus/internal/hdl/http/utils"
)

func (h *Handler) RegisterDeviceRoutes() {
	h.Router.With(mid.Auth(h.au)).Get("/devices", h.listDevices)
	h.Router.With(mid.Auth(h.au), mid.Device).Post("/devices", h.registerDevice)
	h.Router.With(mid.Auth(h.au)).Put("/devices/active", h.touchDevice)
	h.Router.With(mid.Auth(h.au)).Get("/devices/{id}", h.getDevice)
	h.Router.With(mid.Auth(h.au)).Delete("/devices/{id}", h.removeDevice)
}

// listDevices godoc
//
//	@Summary		List the account's devices
//	@Description	Returns registered devices, most recently active first. The device matching X-Device-Id is marked current.
//	@Tags			Device
//	@Produce		json
//	@Param			X-Device-Id	header		string	false	"Device id minted at login"
//	@Param			device_type	query		string	false	"Filter by device type"
//	@Param			browser		query		string	false	"Filter by browser"
//	@Success		200			{array}		models.Device
//	@Failure		401			{object}	utils.ErrorResponse	"unauthorized"
//	@Security		ApiKeyAuth
//	@Router			/devices [get]
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	res, err := h.ctrl.ListDevices(
		r.Context(),
		uid,
		r.Header.Get(mid.DeviceIDHeader),
		utils.ParseFiltersByURL(r),
	)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// registerDevice godoc
//
//	@Summary		Register the calling device
//	@Description	Upserts the device derived from User-Agent and IP. Mints a device id when none is supplied.
//	@Tags			Device
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RegisterDeviceRequest	true	"Device payload"
//	@Success		200		{object}	models.Device
//	@Failure		401		{object}	utils.ErrorResponse	"unauthorized"
//	@Security		ApiKeyAuth
//	@Router			/devices [post]
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	req := &dto.RegisterDeviceRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.RegisterDevice(r.Context(), uid, &d, req.DeviceID)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// touchDevice godoc
//
//	@Summary		Mark the calling device as active
//	@Tags			Device
//	@Produce		json
//	@Param			X-Device-Id	header	string	true	"Device id minted at login"
//	@Success		200			"Touched"
//	@Failure		404			{object}	utils.ErrorResponse	"unknown device"
//	@Security		ApiKeyAuth
//	@Router			/devices/active [put]
func (h *Handler) touchDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	deviceID := r.Header.Get(mid.DeviceIDHeader)
	if deviceID == "" {
		utils.ErrResponse(w, http.StatusBadRequest, ErrNoDeviceInfo)
		return
	}

	if err := h.ctrl.TouchDevice(r.Context(), uid, deviceID); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// getDevice godoc
//
//	@Summary		Get one registered device
//	@Description	Returns the device record. The device matching X-Device-Id is marked current.
//	@Tags			Device
//	@Produce		json
//	@Param			id			path		string	true	"Device id"
//	@Param			X-Device-Id	header		string	false	"Device id minted at login"
//	@Success		200			{object}	models.Device
//	@Failure		404			{object}	utils.ErrorResponse	"unknown device"
//	@Security		ApiKeyAuth
//	@Router			/devices/{id} [get]
func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	res, err := h.ctrl.GetDevice(
		r.Context(),
		uid,
		chi.URLParam(r, "id"),
		r.Header.Get(mid.DeviceIDHeader),
	)
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

// removeDevice godoc
//
//	@Summary		Remove a registered device
//	@Description	The device matching X-Device-Id cannot remove itself
//	@Tags			Device
//	@Produce		json
//	@Param			id	path	string	true	"Device id"
//	@Success		204	"Removed"
//	@Failure		400	{object}	utils.ErrorResponse	"cannot remove current device"
//	@Failure		404	{object}	utils.ErrorResponse	"unknown device"
//	@Security		ApiKeyAuth
//	@Router			/devices/{id} [delete]
func (h *Handler) removeDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	err := h.ctrl.RemoveDevice(
		r.Context(),
		uid,
		chi.URLParam(r, "id"),
		r.Header.Get(mid.DeviceIDHeader),
	)
	if err != nil {
		switch {
		case errors.Is(err, ctrl.ErrCannotRemoveCurrentDevice):
			utils.ErrResponse(w, http.StatusBadRequest, err)
		case errors.Is(err, ctrl.ErrNotFound):
			utils.ErrResponse(w, http.StatusNotFound, err)
		default:
			utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		}
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}
