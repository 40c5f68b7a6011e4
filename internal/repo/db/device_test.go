package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/stretchr/testify/assert"
)

var deviceColumns = []string{
	"id", "user_id", "name", "device_type", "os", "browser",
	"user_agent", "ip", "location", "last_active", "created_at",
}

func TestRepository_ListDevices(t *testing.T) {
	r, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	testUserID := uuid.New()
	now := time.Now()

	t.Run(
		"Success", func(t *testing.T) {
			q, err := buildDeviceListQuery(ctx, testUserID, map[string]any{})
			assert.NoError(t, err)

			mock.ExpectQuery(regexp.QuoteMeta(q.dataQ)).
				WithArgs(testUserID).
				WillReturnRows(
					sqlmock.NewRows(deviceColumns).
						AddRow(
							"device-1", testUserID, "Chrome on Windows", "desktop",
							"Windows", "Chrome", "Mozilla/5.0", "192.168.1.1",
							"Local Network", now, now,
						).
						AddRow(
							"device-2", testUserID, "Safari on iOS", "mobile",
							"iOS", "Safari", "Mozilla/5.0", "192.168.1.2",
							"Local Network", now.Add(-time.Hour), now,
						),
				)

			res, err := r.ListDevices(ctx, testUserID, map[string]any{})
			assert.NoError(t, err)
			assert.Len(t, res, 2)
			assert.Equal(t, "device-1", res[0].ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"FilterByBrowser", func(t *testing.T) {
			filters := map[string]any{"browser": "Chrome"}
			q, err := buildDeviceListQuery(ctx, testUserID, filters)
			assert.NoError(t, err)

			mock.ExpectQuery(regexp.QuoteMeta(q.dataQ)).
				WithArgs(testUserID, "Chrome").
				WillReturnRows(
					sqlmock.NewRows(deviceColumns).
						AddRow(
							"device-1", testUserID, "Chrome on Windows", "desktop",
							"Windows", "Chrome", "Mozilla/5.0", "192.168.1.1",
							"Local Network", now, now,
						),
				)

			res, err := r.ListDevices(ctx, testUserID, filters)
			assert.NoError(t, err)
			assert.Len(t, res, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"Empty", func(t *testing.T) {
			q, err := buildDeviceListQuery(ctx, testUserID, map[string]any{})
			assert.NoError(t, err)

			mock.ExpectQuery(regexp.QuoteMeta(q.dataQ)).
				WithArgs(testUserID).
				WillReturnRows(sqlmock.NewRows(deviceColumns))

			res, err := r.ListDevices(ctx, testUserID, map[string]any{})
			assert.NoError(t, err)
			assert.Empty(t, res)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)
}

func TestRepository_GetDevice(t *testing.T) {
	r, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	testUserID := uuid.New()
	now := time.Now()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(deviceGetQ)).
				WithArgs("device-1", testUserID).
				WillReturnRows(
					sqlmock.NewRows(deviceColumns).
						AddRow(
							"device-1", testUserID, "Chrome on Windows", "desktop",
							"Windows", "Chrome", "Mozilla/5.0", "192.168.1.1",
							"Local Network", now, now,
						),
				)

			res, err := r.GetDevice(ctx, testUserID, "device-1")
			assert.NoError(t, err)
			assert.Equal(t, "device-1", res.ID)
			assert.Equal(t, "Chrome", res.Browser)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(deviceGetQ)).
				WithArgs("missing", testUserID).
				WillReturnRows(sqlmock.NewRows(deviceColumns))

			res, err := r.GetDevice(ctx, testUserID, "missing")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, repo.ErrNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)
}

func TestRepository_UpsertDevice(t *testing.T) {
	r, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	testUserID := uuid.New()
	device := &md.Device{
		ID:         "device-1",
		UserID:     testUserID,
		Name:       "Chrome on Windows",
		DeviceType: "desktop",
		OS:         "Windows",
		Browser:    "Chrome",
		UA:         "Mozilla/5.0",
		IP:         "192.168.1.1",
		Location:   "Local Network",
	}

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(deviceUpsertQ)).
				WithArgs(
					device.ID, device.UserID, device.Name, device.DeviceType,
					device.OS, device.Browser, device.UA, device.IP, device.Location,
				).
				WillReturnResult(sqlmock.NewResult(1, 1))

			assert.NoError(t, r.UpsertDevice(ctx, device))
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"ExecFailure", func(t *testing.T) {
			execErr := errors.New("connection reset")
			mock.ExpectExec(regexp.QuoteMeta(deviceUpsertQ)).
				WithArgs(
					device.ID, device.UserID, device.Name, device.DeviceType,
					device.OS, device.Browser, device.UA, device.IP, device.Location,
				).
				WillReturnError(execErr)

			assert.ErrorIs(t, r.UpsertDevice(ctx, device), execErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)
}

func TestRepository_TouchDevice(t *testing.T) {
	r, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	testUserID := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(deviceTouchQ)).
				WithArgs("device-1", testUserID).
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, r.TouchDevice(ctx, testUserID, "device-1"))
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(deviceTouchQ)).
				WithArgs("missing", testUserID).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := r.TouchDevice(ctx, testUserID, "missing")
			assert.ErrorIs(t, err, repo.ErrNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)
}

func TestRepository_DeleteDevice(t *testing.T) {
	r, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	testUserID := uuid.New()

	t.Run(
		"Success", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(deviceDeleteQ)).
				WithArgs("device-1", testUserID).
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, r.DeleteDevice(ctx, testUserID, "device-1"))
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mock.ExpectExec(regexp.QuoteMeta(deviceDeleteQ)).
				WithArgs("missing", testUserID).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := r.DeleteDevice(ctx, testUserID, "missing")
			assert.ErrorIs(t, err, repo.ErrNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		},
	)
}
