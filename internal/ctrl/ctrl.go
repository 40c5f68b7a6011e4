package ctrl

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/auth"
	"github.com/nimbus-sync/nimbus/internal/auth/google"
	"github.com/nimbus-sync/nimbus/internal/auth/jwt"
	"github.com/nimbus-sync/nimbus/internal/repo/cache"
	"github.com/nimbus-sync/nimbus/internal/repo/s3"
)

type AppRepo interface {
	userRepo
	authRepo
	deviceRepo
	syncRepo
}

type AppCtrl interface {
	authCtrl
	userCtrl
	deviceCtrl
}

type CacheService interface {
	io.Closer
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)

	SetChallenge(ctx context.Context, uid uuid.UUID, ch cache.Challenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, uid uuid.UUID) (cache.Challenge, error)
	ConsumeChallenge(ctx context.Context, uid uuid.UUID) (cache.Challenge, error)
	DeleteChallenge(ctx context.Context, uid uuid.UUID)

	SetResetToken(ctx context.Context, tokenHash string, uid uuid.UUID, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
}

// PasswordService covers credential hashing, the per-method step-up policy
// and device fingerprinting.
type PasswordService interface {
	Hash(pswd string) (string, error)
	ComparePasswords(hashed, pswd []byte) error
	RequireStepUp(m auth.Method) bool
	Fingerprint(ua, ip string) string
}

type OTPService interface {
	NewSecret() (string, error)
	GenerateCode(secret string) (string, error)
	Verify(code, secret string) bool
}

type EmailService interface {
	SendStepUpCode(ctx context.Context, toEmail, code string) error
	SendPasswordResetLink(ctx context.Context, toEmail, token string) error
}

type syncRepo interface {
	PurgeAccountData(ctx context.Context, userID uuid.UUID) error
}

type Controller struct {
	repo  AppRepo
	cache CacheService
	au    jwt.Port
	pw    PasswordService
	otp   OTPService
	email EmailService
	oauth google.Port
	s3    s3.Service
}

func New(
	repo AppRepo,
	cache CacheService,
	au jwt.Port,
	pw PasswordService,
	otp OTPService,
	email EmailService,
	oauth google.Port,
	s3 s3.Service,
) *Controller {
	return &Controller{
		repo:  repo,
		cache: cache,
		au:    au,
		pw:    pw,
		otp:   otp,
		email: email,
		oauth: oauth,
		s3:    s3,
	}
}
