package ctrl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
	"github.com/nimbus-sync/nimbus/tests/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestController_IsUserExist(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	svc, mockRepo, _, _, _, _, _, _ := newTestController(ctrlMock)
	ctx := context.Background()

	t.Run(
		"Exists", func(t *testing.T) {
			mockRepo.EXPECT().
				GetUserByEmail(gomock.Any(), "test@example.com").
				Return(&models.User{Email: "test@example.com"}, nil)

			res, err := svc.IsUserExist(ctx, "test@example.com")
			assert.NoError(t, err)
			assert.True(t, res.Exists)
		},
	)

	t.Run(
		"DoesNotExist", func(t *testing.T) {
			mockRepo.EXPECT().
				GetUserByEmail(gomock.Any(), "missing@example.com").
				Return(nil, repo.ErrNotFound)

			res, err := svc.IsUserExist(ctx, "missing@example.com")
			assert.NoError(t, err)
			assert.False(t, res.Exists)
		},
	)

	t.Run(
		"RepoError", func(t *testing.T) {
			dbErr := errors.New("connection reset")
			mockRepo.EXPECT().
				GetUserByEmail(gomock.Any(), "test@example.com").
				Return(nil, dbErr)

			res, err := svc.IsUserExist(ctx, "test@example.com")
			assert.ErrorIs(t, err, dbErr)
			assert.Nil(t, res)
		},
	)
}

func TestController_GetUserByID(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	svc, mockRepo, mockCache, _, _, _, _, _ := newTestController(ctrlMock)

	ctx := context.Background()
	testUserID := uuid.New()
	cacheKey := fmt.Sprintf(userCacheKey, testUserID)
	testUser := &models.User{
		ID:    testUserID,
		Name:  "Test User",
		Email: "test@example.com",
	}

	t.Run(
		"CacheHit", func(t *testing.T) {
			mockCache.EXPECT().
				GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
				DoAndReturn(
					func(_ context.Context, _ string, dest any) error {
						*dest.(*models.User) = *testUser
						return nil
					},
				)

			res, err := svc.GetUserByID(ctx, testUserID)
			assert.NoError(t, err)
			assert.Equal(t, testUser.Email, res.Email)
		},
	)

	t.Run(
		"CacheMissFallsToRepo", func(t *testing.T) {
			mockCache.EXPECT().
				GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
				Return(errors.New("not found in cache"))
			mockRepo.EXPECT().
				GetUserByID(gomock.Any(), testUserID).
				Return(testUser, nil)
			mockCache.EXPECT().
				Set(gomock.Any(), gomock.Any(), cacheKey, gomock.Any())

			res, err := svc.GetUserByID(ctx, testUserID)
			assert.NoError(t, err)
			assert.Equal(t, testUser, res)
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mockCache.EXPECT().
				GetToStruct(gomock.Any(), cacheKey, gomock.Any()).
				Return(errors.New("not found in cache"))
			mockRepo.EXPECT().
				GetUserByID(gomock.Any(), testUserID).
				Return(nil, repo.ErrNotFound)

			res, err := svc.GetUserByID(ctx, testUserID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, res)
		},
	)
}

func TestController_UpdateUser(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockS3 := mocks.NewMockS3Service(ctrlMock)
	svc := New(
		mockRepo, mockCache,
		mocks.NewMockJWTPort(ctrlMock),
		mocks.NewMockPasswordService(ctrlMock),
		mocks.NewMockOTPService(ctrlMock),
		mocks.NewMockEmailService(ctrlMock),
		mocks.NewMockGooglePort(ctrlMock),
		mockS3,
	)

	ctx := context.Background()
	testUserID := uuid.New()
	testRequest := &dto.UpdateUserRequest{Name: "Renamed"}

	t.Run(
		"SuccessWithoutFile", func(t *testing.T) {
			mockRepo.EXPECT().
				UpdateUser(gomock.Any(), testUserID, testRequest).
				Return(nil)
			mockCache.EXPECT().
				Delete(gomock.Any(), fmt.Sprintf(userCacheKey, testUserID))

			assert.NoError(t, svc.UpdateUser(ctx, testUserID, testRequest, nil))
		},
	)

	t.Run(
		"SuccessWithAvatarUpload", func(t *testing.T) {
			file := &s3.UploadFileRequest{
				Name:        "avatar.png",
				File:        []byte("png-bytes"),
				ContentType: "image/png",
			}
			req := &dto.UpdateUserRequest{Name: "Renamed"}

			mockS3.EXPECT().
				UploadFile(gomock.Any(), file).
				Return("/avatars/uuid-avatar.png", nil)
			mockRepo.EXPECT().
				UpdateUser(gomock.Any(), testUserID, req).
				DoAndReturn(
					func(_ context.Context, _ uuid.UUID, got *dto.UpdateUserRequest) error {
						assert.Equal(t, "/avatars/uuid-avatar.png", got.Avatar)
						return nil
					},
				)
			mockCache.EXPECT().
				Delete(gomock.Any(), fmt.Sprintf(userCacheKey, testUserID))

			assert.NoError(t, svc.UpdateUser(ctx, testUserID, req, file))
		},
	)

	t.Run(
		"UploadFailure", func(t *testing.T) {
			uploadErr := errors.New("minio down")
			file := &s3.UploadFileRequest{Name: "avatar.png", File: []byte("png-bytes")}

			mockS3.EXPECT().UploadFile(gomock.Any(), file).Return("", uploadErr)

			assert.ErrorIs(t, svc.UpdateUser(ctx, testUserID, testRequest, file), uploadErr)
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			mockRepo.EXPECT().
				UpdateUser(gomock.Any(), testUserID, testRequest).
				Return(repo.ErrNotFound)

			assert.ErrorIs(t, svc.UpdateUser(ctx, testUserID, testRequest, nil), ErrNotFound)
		},
	)
}

func TestController_DeleteUser(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	svc, mockRepo, mockCache, _, _, _, _, _ := newTestController(ctrlMock)

	ctx := context.Background()
	testUserID := uuid.New()

	t.Run(
		"SuccessCascade", func(t *testing.T) {
			gomock.InOrder(
				mockRepo.EXPECT().RevokeAllTokens(gomock.Any(), testUserID).Return(nil),
				mockRepo.EXPECT().PurgeAccountData(gomock.Any(), testUserID).Return(nil),
				mockRepo.EXPECT().DeleteUser(gomock.Any(), testUserID).Return(nil),
			)
			mockCache.EXPECT().
				Delete(gomock.Any(), fmt.Sprintf(userCacheKey, testUserID))
			mockCache.EXPECT().DeleteChallenge(gomock.Any(), testUserID)
			mockCache.EXPECT().
				InvalidateKeysByPattern(gomock.Any(), userPattern).
				AnyTimes()

			assert.NoError(t, svc.DeleteUser(ctx, testUserID))

			// invalidation runs on its own goroutine
			time.Sleep(10 * time.Millisecond)
		},
	)

	t.Run(
		"PurgeFailureAborts", func(t *testing.T) {
			purgeErr := errors.New("purge failed")
			gomock.InOrder(
				mockRepo.EXPECT().RevokeAllTokens(gomock.Any(), testUserID).Return(nil),
				mockRepo.EXPECT().PurgeAccountData(gomock.Any(), testUserID).Return(purgeErr),
			)

			assert.ErrorIs(t, svc.DeleteUser(ctx, testUserID), purgeErr)
		},
	)

	t.Run(
		"NotFound", func(t *testing.T) {
			gomock.InOrder(
				mockRepo.EXPECT().RevokeAllTokens(gomock.Any(), testUserID).Return(nil),
				mockRepo.EXPECT().PurgeAccountData(gomock.Any(), testUserID).Return(nil),
				mockRepo.EXPECT().DeleteUser(gomock.Any(), testUserID).Return(repo.ErrNotFound),
			)

			assert.ErrorIs(t, svc.DeleteUser(ctx, testUserID), ErrNotFound)
		},
	)
}
