package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type Kind int

const (
	Access Kind = iota
	Refresh
)

type Port interface {
	GetAccessTime() time.Time
	GetRefreshTime() time.Time
	GenPair(ctx context.Context, uid uuid.UUID) (string, string, error)
	NewToken(ctx context.Context, uid uuid.UUID, kind Kind) (string, error)
	ParseClaims(ctx context.Context, tokenStr string, kind Kind) (Claims, error)
}

type Core struct {
	secret        []byte
	refreshSecret []byte
	issuer        string
}

type Claims struct {
	UID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

func New(conf config.Config) *Core {
	return &Core{
		secret:        []byte(conf.Auth.JWT.Secret),
		refreshSecret: []byte(conf.Auth.JWT.RefreshSecret),
		issuer:        conf.Auth.JWT.Issuer,
	}
}

func (c *Core) GetAccessTime() time.Time {
	return time.Now().Add(config.AccessTokenDuration)
}

func (c *Core) GetRefreshTime() time.Time {
	return time.Now().Add(config.RefreshTokenDuration)
}

func (c *Core) key(kind Kind) []byte {
	if kind == Refresh {
		return c.refreshSecret
	}
	return c.secret
}

func (c *Core) duration(kind Kind) time.Duration {
	if kind == Refresh {
		return config.RefreshTokenDuration
	}
	return config.AccessTokenDuration
}

func (c *Core) GenPair(ctx context.Context, uid uuid.UUID) (string, string, error) {
	const op = "auth.GenPair.jwt"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	access, err := c.NewToken(ctx, uid, Access)
	if err != nil {
		zap.L().Error(
			"Failed to generate token pair",
			zap.String("uid", uid.String()),
			zap.Error(err),
		)

		return "", "", err
	}

	refresh, err := c.NewToken(ctx, uid, Refresh)
	if err != nil {
		zap.L().Error(
			"Failed to generate token pair",
			zap.String("uid", uid.String()),
			zap.Error(err),
		)

		return "", "", err
	}

	return access, refresh, nil
}

func (c *Core) NewToken(ctx context.Context, uid uuid.UUID, kind Kind) (string, error) {
	const op = "auth.NewToken.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &Claims{
			UID: uid,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.duration(kind))),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    c.issuer,
			},
		},
	).SignedString(c.key(kind))
	if err != nil {
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.Error(err),
		)

		return "", ErrWhileCreatingToken
	}

	return signed, nil
}

func (c *Core) ParseClaims(ctx context.Context, tokenStr string, kind Kind) (Claims, error) {
	const op = "auth.ParseClaims.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return c.key(kind), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims, ErrTokenExpired
		}

		zap.L().Debug(
			"Failed to parse claims",
			zap.String("op", op),
			zap.Error(err),
		)

		return claims, ErrInvalidToken
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	return claims, nil
}
