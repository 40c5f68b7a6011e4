package ctrl

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/auth"
	"github.com/nimbus-sync/nimbus/internal/dto"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/opentracing/opentracing-go"
)

type deviceCtrl interface {
	ListDevices(
		ctx context.Context,
		userID uuid.UUID,
		currentDeviceID string,
		filters map[string]any,
	) ([]*md.Device, error)
	RegisterDevice(
		ctx context.Context,
		userID uuid.UUID,
		d *dto.DeviceRequest,
		deviceID string,
	) (*md.Device, error)
	GetDevice(
		ctx context.Context,
		userID uuid.UUID,
		deviceID, currentDeviceID string,
	) (*md.Device, error)
	TouchDevice(ctx context.Context, userID uuid.UUID, deviceID string) error
	RemoveDevice(ctx context.Context, userID uuid.UUID, deviceID, currentDeviceID string) error
}

type deviceRepo interface {
	ListDevices(ctx context.Context, userID uuid.UUID, filters map[string]any) ([]*md.Device, error)
	GetDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*md.Device, error)
	UpsertDevice(ctx context.Context, device *md.Device) error
	TouchDevice(ctx context.Context, userID uuid.UUID, deviceID string) error
	DeleteDevice(ctx context.Context, userID uuid.UUID, deviceID string) error
}

// ListDevices annotates each record with whether it is the caller's own
// device, judged purely by the id the caller presented.
func (c *Controller) ListDevices(
	ctx context.Context,
	userID uuid.UUID,
	currentDeviceID string,
	filters map[string]any,
) ([]*md.Device, error) {
	const op = "devices.ListDevices.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.ListDevices(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	for _, d := range res {
		d.IsCurrent = currentDeviceID != "" && d.ID == currentDeviceID
	}

	return res, nil
}

// RegisterDevice upserts by (user, device id). A caller without a persisted
// id gets a freshly minted one; the fingerprint is not reproducible, so the
// client is expected to store whatever comes back.
func (c *Controller) RegisterDevice(
	ctx context.Context,
	userID uuid.UUID,
	d *dto.DeviceRequest,
	deviceID string,
) (*md.Device, error) {
	const op = "devices.RegisterDevice.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	device := auth.GenerateDevice(d)
	device.UserID = userID
	device.ID = deviceID
	if device.ID == "" {
		device.ID = c.pw.Fingerprint(d.UA, d.IP)
	}

	if err := c.repo.UpsertDevice(ctx, &device); err != nil {
		return nil, err
	}

	return &device, nil
}

func (c *Controller) GetDevice(
	ctx context.Context,
	userID uuid.UUID,
	deviceID, currentDeviceID string,
) (*md.Device, error) {
	const op = "devices.GetDevice.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetDevice(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res.IsCurrent = currentDeviceID != "" && res.ID == currentDeviceID

	return res, nil
}

func (c *Controller) TouchDevice(ctx context.Context, userID uuid.UUID, deviceID string) error {
	const op = "devices.TouchDevice.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	err := c.repo.TouchDevice(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (c *Controller) RemoveDevice(
	ctx context.Context,
	userID uuid.UUID,
	deviceID, currentDeviceID string,
) error {
	const op = "devices.RemoveDevice.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if deviceID == currentDeviceID {
		return ErrCannotRemoveCurrentDevice
	}

	err := c.repo.DeleteDevice(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
