package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// The sync resource tables cascade from users, so the auth core never has
// to touch them directly during account deletion. PurgeAccountData exists
// for the explicit-cascade path used when a deployment disables FK cascades.
const purgeBookmarksQ = `DELETE FROM bookmarks WHERE user_id = $1`
const purgeTabsQ = `DELETE FROM tabs WHERE user_id = $1`
const purgeHistoryQ = `DELETE FROM history WHERE user_id = $1`
const purgePasswordsQ = `DELETE FROM passwords WHERE user_id = $1`

func (r *Repository) PurgeAccountData(ctx context.Context, userID uuid.UUID) error {
	const op = "sync.PurgeAccountData.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{purgeBookmarksQ, purgeTabsQ, purgeHistoryQ, purgePasswordsQ} {
		if _, err = tx.ExecContext(ctx, q, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
