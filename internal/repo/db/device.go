package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) ListDevices(
	ctx context.Context,
	userID uuid.UUID,
	filters map[string]any,
) ([]*md.Device, error) {
	const op = "devices.ListDevices.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	q, err := buildDeviceListQuery(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	res := make([]*md.Device, 0)
	if err = r.conn.SelectContext(ctx, &res, q.dataQ, q.dataArgs...); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*md.Device, error) {
	const op = "devices.GetDevice.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.Device{}
	err := r.conn.GetContext(ctx, res, deviceGetQ, deviceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) UpsertDevice(ctx context.Context, device *md.Device) error {
	const op = "devices.UpsertDevice.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(
		ctx, deviceUpsertQ,
		device.ID,
		device.UserID,
		device.Name,
		device.DeviceType,
		device.OS,
		device.Browser,
		device.UA,
		device.IP,
		device.Location,
	)

	return err
}

func (r *Repository) TouchDevice(ctx context.Context, userID uuid.UUID, deviceID string) error {
	const op = "devices.TouchDevice.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, deviceTouchQ, deviceID, userID)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err != nil {
		return err
	} else if aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteDevice(ctx context.Context, userID uuid.UUID, deviceID string) error {
	const op = "devices.DeleteDevice.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, deviceDeleteQ, deviceID, userID)
	if err != nil {
		return err
	}

	if aff, err := res.RowsAffected(); err != nil {
		return err
	} else if aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}
