package utils

import (
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/nimbus-sync/nimbus/internal/hdl"
	"github.com/nimbus-sync/nimbus/internal/hdl/validation"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
	"go.uber.org/zap"
)

type Response struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Data: data,
		},
	)
}

func StatusResponse(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
}

func ErrResponse(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&ErrorResponse{
			Error: err.Error(),
		},
	)
}

// ParseAndValidate decodes the JSON body into dst and validates it. On
// failure it writes the error response itself and reports false.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validation.Struct(dst); err != nil {
		ErrResponse(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func ParseDeviceByRequest(ctx context.Context) (dto.DeviceRequest, bool) {
	d, ok := ctx.Value(config.DeviceKey).(dto.DeviceRequest)
	return d, ok
}

func ParseFiltersByURL(r *http.Request) map[string]any {
	filters := make(map[string]any)
	for _, key := range []string{"device_type", "browser"} {
		if v := r.URL.Query().Get(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

// ParseFileField reads an optional multipart file field into req. Absence
// is not an error.
func ParseFileField(r *http.Request, field string, req *s3.UploadFileRequest) error {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil
		}
		return hdl.ErrDecodeRequest
	}
	defer func() {
		if err := file.Close(); err != nil {
			zap.L().Debug("failed to close file", zap.Error(err))
		}
	}()

	if header.Size > config.MaxMemory {
		return hdl.ErrFileTooLarge
	}

	bytes, err := io.ReadAll(file)
	if err != nil {
		return hdl.ErrInternal
	}

	req.Name = header.Filename
	req.File = bytes
	req.ContentType = header.Header.Get("Content-Type")

	return nil
}
