package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	mid "github.com/nimbus-sync/nimbus/internal/hdl/http/middleware"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_ListDevices(t *testing.T) {
	const uri = "/devices"
	mock := gomock.NewController(t)
	defer mock.Finish()

	testUID := uuid.New()
	testErr := errors.New("testErr")
	mctrl := mocks.NewMockAppCtrl(mock)
	h := New(mocks.NewMockJWTPort(mock), mctrl, testClientURL)

	t.Run(
		"ErrNoUID", func(t *testing.T) {
			w := httptest.NewRecorder()
			h.listDevices(w, httptest.NewRequest(http.MethodGet, uri, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
		},
	)

	t.Run(
		"StatusInternalServerError", func(t *testing.T) {
			mctrl.EXPECT().ListDevices(gomock.Any(), testUID, "", map[string]any{}).
				Return(nil, testErr)

			w := httptest.NewRecorder()
			h.listDevices(w, withUID(httptest.NewRequest(http.MethodGet, uri, nil), testUID))

			assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
		},
	)

	t.Run(
		"SuccessWithFilters", func(t *testing.T) {
			mctrl.EXPECT().ListDevices(
				gomock.Any(), testUID, "device-1",
				map[string]any{"browser": "Chrome"},
			).Return(
				[]*md.Device{
					{ID: "device-1", Browser: "Chrome", IsCurrent: true},
					{ID: "device-2", Browser: "Chrome"},
				}, nil,
			)

			req := withUID(httptest.NewRequest(http.MethodGet, uri+"?browser=Chrome", nil), testUID)
			req.Header.Set(mid.DeviceIDHeader, "device-1")

			w := httptest.NewRecorder()
			h.listDevices(w, req)

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)

			res := &struct {
				Data []*md.Device `json:"data"`
			}{}
			require.NoError(t, json.NewDecoder(w.Result().Body).Decode(res))
			assert.Len(t, res.Data, 2)
			assert.True(t, res.Data[0].IsCurrent)
			assert.False(t, res.Data[1].IsCurrent)
		},
	)
}

func TestHandler_RegisterDevice(t *testing.T) {
	const uri = "/devices"
	mock := gomock.NewController(t)
	defer mock.Finish()

	testUID := uuid.New()
	mctrl := mocks.NewMockAppCtrl(mock)
	h := New(mocks.NewMockJWTPort(mock), mctrl, testClientURL)

	payload := func(t *testing.T, m map[string]any) *bytes.Buffer {
		t.Helper()
		b, err := json.Marshal(m)
		require.NoError(t, err)
		return bytes.NewBuffer(b)
	}

	t.Run(
		"ErrNoUID", func(t *testing.T) {
			w := httptest.NewRecorder()
			h.registerDevice(w, httptest.NewRequest(http.MethodPost, uri, payload(t, map[string]any{})))

			assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
		},
	)

	t.Run(
		"ErrNoDeviceInfo", func(t *testing.T) {
			w := httptest.NewRecorder()
			h.registerDevice(
				w, withUID(httptest.NewRequest(http.MethodPost, uri, payload(t, map[string]any{})), testUID),
			)

			assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
			assert.Equal(t, ErrNoDeviceInfo.Error(), decodeErr(t, w))
		},
	)

	t.Run(
		"Success", func(t *testing.T) {
			mctrl.EXPECT().RegisterDevice(gomock.Any(), testUID, &testDeviceReq, "device-1").
				Return(&md.Device{ID: "device-1", UserID: testUID}, nil)

			req := withUID(
				withDevice(httptest.NewRequest(http.MethodPost, uri, payload(t, map[string]any{"deviceId": "device-1"}))),
				testUID,
			)

			w := httptest.NewRecorder()
			h.registerDevice(w, req)

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)

			res := &struct {
				Data md.Device `json:"data"`
			}{}
			require.NoError(t, json.NewDecoder(w.Result().Body).Decode(res))
			assert.Equal(t, "device-1", res.Data.ID)
		},
	)
}

func TestHandler_TouchDevice(t *testing.T) {
	const uri = "/devices/active"
	mock := gomock.NewController(t)
	defer mock.Finish()

	testUID := uuid.New()
	mctrl := mocks.NewMockAppCtrl(mock)
	h := New(mocks.NewMockJWTPort(mock), mctrl, testClientURL)

	t.Run(
		"ErrNoDeviceID", func(t *testing.T) {
			w := httptest.NewRecorder()
			h.touchDevice(w, withUID(httptest.NewRequest(http.MethodPut, uri, nil), testUID))

			assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		},
	)

	t.Run(
		"ErrNotFound", func(t *testing.T) {
			mctrl.EXPECT().TouchDevice(gomock.Any(), testUID, "missing").
				Return(ctrl.ErrNotFound)

			req := withUID(httptest.NewRequest(http.MethodPut, uri, nil), testUID)
			req.Header.Set(mid.DeviceIDHeader, "missing")

			w := httptest.NewRecorder()
			h.touchDevice(w, req)

			assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
		},
	)

	t.Run(
		"Success", func(t *testing.T) {
			mctrl.EXPECT().TouchDevice(gomock.Any(), testUID, "device-1").Return(nil)

			req := withUID(httptest.NewRequest(http.MethodPut, uri, nil), testUID)
			req.Header.Set(mid.DeviceIDHeader, "device-1")

			w := httptest.NewRecorder()
			h.touchDevice(w, req)

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		},
	)
}

func TestHandler_RemoveDevice(t *testing.T) {
	mock := gomock.NewController(t)
	defer mock.Finish()

	testUID := uuid.New()
	mctrl := mocks.NewMockAppCtrl(mock)
	h := New(mocks.NewMockJWTPort(mock), mctrl, testClientURL)

	// removeDevice reads the id from the chi route context.
	newReq := func(t *testing.T, deviceID, currentID string) *http.Request {
		t.Helper()

		req := withUID(httptest.NewRequest(http.MethodDelete, "/devices/"+deviceID, nil), testUID)
		if currentID != "" {
			req.Header.Set(mid.DeviceIDHeader, currentID)
		}

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", deviceID)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run(
		"ErrCannotRemoveCurrentDevice", func(t *testing.T) {
			mctrl.EXPECT().RemoveDevice(gomock.Any(), testUID, "device-1", "device-1").
				Return(ctrl.ErrCannotRemoveCurrentDevice)

			w := httptest.NewRecorder()
			h.removeDevice(w, newReq(t, "device-1", "device-1"))

			assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
			assert.Equal(t, ctrl.ErrCannotRemoveCurrentDevice.Error(), decodeErr(t, w))
		},
	)

	t.Run(
		"ErrNotFound", func(t *testing.T) {
			mctrl.EXPECT().RemoveDevice(gomock.Any(), testUID, "missing", "device-1").
				Return(ctrl.ErrNotFound)

			w := httptest.NewRecorder()
			h.removeDevice(w, newReq(t, "missing", "device-1"))

			assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
		},
	)

	t.Run(
		"Success", func(t *testing.T) {
			mctrl.EXPECT().RemoveDevice(gomock.Any(), testUID, "device-2", "device-1").
				Return(nil)

			w := httptest.NewRecorder()
			h.removeDevice(w, newReq(t, "device-2", "device-1"))

			assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)
		},
	)
}

func TestHandler_GetDevice(t *testing.T) {
	mock := gomock.NewController(t)
	defer mock.Finish()

	testUID := uuid.New()
	testErr := errors.New("testErr")
	mctrl := mocks.NewMockAppCtrl(mock)
	h := New(mocks.NewMockJWTPort(mock), mctrl, testClientURL)

	// getDevice reads the id from the chi route context.
	newReq := func(t *testing.T, deviceID, currentID string) *http.Request {
		t.Helper()

		req := withUID(httptest.NewRequest(http.MethodGet, "/devices/"+deviceID, nil), testUID)
		if currentID != "" {
			req.Header.Set(mid.DeviceIDHeader, currentID)
		}

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", deviceID)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run(
		"ErrNoUID", func(t *testing.T) {
			w := httptest.NewRecorder()
			h.getDevice(w, httptest.NewRequest(http.MethodGet, "/devices/device-1", nil))

			assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
		},
	)

	t.Run(
		"ErrNotFound", func(t *testing.T) {
			mctrl.EXPECT().GetDevice(gomock.Any(), testUID, "missing", "device-1").
				Return(nil, ctrl.ErrNotFound)

			w := httptest.NewRecorder()
			h.getDevice(w, newReq(t, "missing", "device-1"))

			assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
		},
	)

	t.Run(
		"StatusInternalServerError", func(t *testing.T) {
			mctrl.EXPECT().GetDevice(gomock.Any(), testUID, "device-1", "device-1").
				Return(nil, testErr)

			w := httptest.NewRecorder()
			h.getDevice(w, newReq(t, "device-1", "device-1"))

			assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
		},
	)

	t.Run(
		"Success", func(t *testing.T) {
			mctrl.EXPECT().GetDevice(gomock.Any(), testUID, "device-1", "device-1").
				Return(&md.Device{ID: "device-1", Browser: "Chrome", IsCurrent: true}, nil)

			w := httptest.NewRecorder()
			h.getDevice(w, newReq(t, "device-1", "device-1"))

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)

			res := &struct {
				Data md.Device `json:"data"`
			}{}
			require.NoError(t, json.NewDecoder(w.Result().Body).Decode(res))
			assert.Equal(t, "device-1", res.Data.ID)
			assert.True(t, res.Data.IsCurrent)
		},
	)
}
