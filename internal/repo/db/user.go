package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nimbus-sync/nimbus/internal/dto"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*md.User, error) {
	const op = "users.GetUserByEmail.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByEmailQ, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (uuid.UUID, error) {
	const op = "users.CreateUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var id uuid.UUID
	err := r.conn.QueryRowxContext(
		ctx, userCreateQ,
		req.Name,
		req.Password,
		req.Email,
		req.GoogleID,
		req.Avatar,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, repo.ErrAlreadyExists
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Repository) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) error {
	const op = "users.UpdateUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userUpdateQ, req.Name, req.Avatar, id)
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

func (r *Repository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashed string) error {
	const op = "users.UpdateUserPassword.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userUpdatePasswordQ, hashed, id)
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

func (r *Repository) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID, name string) error {
	const op = "users.LinkGoogleID.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userLinkGoogleQ, googleID, name, id)
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

// DeleteUser removes the account row. Owned records (ledger entries,
// devices, sync data) go with it via ON DELETE CASCADE.
func (r *Repository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "users.DeleteUser.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, userDeleteQ, userID)
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
