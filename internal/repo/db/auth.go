package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) CreateToken(
	ctx context.Context,
	userID uuid.UUID,
	hashedT string,
	expiresAt time.Time,
	device *md.Device,
) error {
	const op = "auth.CreateToken.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, tokenCreateQ, userID, hashedT, expiresAt); err != nil {
		return err
	}

	if device != nil {
		_, err = tx.ExecContext(
			ctx, deviceUpsertQ,
			device.ID,
			userID,
			device.Name,
			device.DeviceType,
			device.OS,
			device.Browser,
			device.UA,
			device.IP,
			device.Location,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RotateToken swaps the stored token hash for a new one in a single
// conditional UPDATE. Two concurrent rotations of the same token race on the
// WHERE clause; exactly one matches, the loser gets ErrNotFound.
func (r *Repository) RotateToken(
	ctx context.Context,
	userID uuid.UUID,
	oldHash, newHash string,
	expiresAt time.Time,
) error {
	const op = "auth.RotateToken.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, tokenRotateQ, newHash, expiresAt, userID, oldHash)
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

func (r *Repository) RevokeToken(ctx context.Context, userID uuid.UUID, hash string) error {
	const op = "auth.RevokeToken.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, tokenRevokeQ, userID, hash)
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

func (r *Repository) RevokeAllTokens(ctx context.Context, userID uuid.UUID) error {
	const op = "auth.RevokeAllTokens.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	_, err := r.conn.ExecContext(ctx, tokenRevokeAllQ, userID)
	return err
}
