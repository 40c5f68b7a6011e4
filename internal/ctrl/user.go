package ctrl

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/dto"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
	"github.com/opentracing/opentracing-go"
)

type userCtrl interface {
	IsUserExist(ctx context.Context, email string) (*dto.ExistsUserResponse, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	UpdateUser(
		ctx context.Context,
		id uuid.UUID,
		req *dto.UpdateUserRequest,
		file *s3.UploadFileRequest,
	) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userRepo interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	GetUserByEmail(ctx context.Context, email string) (*md.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (uuid.UUID, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) error
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashed string) error
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID, name string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

const (
	userCacheKey = "user:%v"
	userPattern  = "user*"
)

func (c *Controller) IsUserExist(
	ctx context.Context,
	email string,
) (*dto.ExistsUserResponse, error) {
	const op = "users.IsUserExist.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &dto.ExistsUserResponse{Exists: false}

	_, err := c.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return res, nil
		}
		return nil, err
	}

	res.Exists = true

	return res, nil
}

func (c *Controller) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.User{}
	cacheKey := fmt.Sprintf(userCacheKey, userID)
	err := c.cache.GetToStruct(ctx, cacheKey, cached)
	if err == nil {
		return cached, nil
	}

	res, err := c.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bytes, err := json.Marshal(res)
	if err == nil {
		c.cache.Set(ctx, config.DefaultCacheTime, cacheKey, bytes)
	}

	return res, nil
}

func (c *Controller) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	req *dto.UpdateUserRequest,
	file *s3.UploadFileRequest,
) error {
	const op = "users.UpdateUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if file != nil && len(file.File) > 0 {
		url, err := c.s3.UploadFile(ctx, file)
		if err != nil {
			return err
		}

		req.Avatar = url
	}

	err := c.repo.UpdateUser(ctx, id, req)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, id))

	return nil
}

// DeleteUser is the account-deletion cascade: sessions are revoked, sync
// data purged, then the account row goes away.
func (c *Controller) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "users.DeleteUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if err := c.repo.RevokeAllTokens(ctx, userID); err != nil {
		return err
	}

	if err := c.repo.PurgeAccountData(ctx, userID); err != nil {
		return err
	}

	err := c.repo.DeleteUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, userID))
	c.cache.DeleteChallenge(ctx, userID)

	go c.cache.InvalidateKeysByPattern(ctx, userPattern)

	return nil
}
