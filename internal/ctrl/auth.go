package ctrl

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nimbus-sync/nimbus/internal/auth"
	"github.com/nimbus-sync/nimbus/internal/auth/google"
	"github.com/nimbus-sync/nimbus/internal/auth/jwt"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/dto"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"github.com/nimbus-sync/nimbus/internal/repo"
	"github.com/nimbus-sync/nimbus/internal/repo/cache"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type authCtrl interface {
	SignUp(
		ctx context.Context,
		d *dto.DeviceRequest,
		req *dto.SignUpRequest,
	) (*dto.AuthResponse, *dto.StepUpResponse, error)
	Authenticate(
		ctx context.Context,
		d *dto.DeviceRequest,
		req *dto.EmailAndPasswordRequest,
	) (*dto.StepUpResponse, error)
	SendStepUpCode(ctx context.Context, email string) (*dto.StepUpResponse, error)
	VerifyStepUpCode(
		ctx context.Context,
		d *dto.DeviceRequest,
		req *dto.VerifyCodeRequest,
	) (*dto.AuthResponse, error)
	GoogleAuthURL() (string, error)
	GoogleCallback(
		ctx context.Context,
		d *dto.DeviceRequest,
		code string,
	) (*dto.AuthResponse, *dto.StepUpResponse, error)
	Refresh(
		ctx context.Context,
		d *dto.DeviceRequest,
		deviceID string,
		req *dto.RefreshRequest,
	) (*dto.TokenPair, error)
	Logout(ctx context.Context, req *dto.RefreshRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authRepo interface {
	CreateToken(
		ctx context.Context,
		userID uuid.UUID,
		hashedT string,
		expiresAt time.Time,
		device *md.Device,
	) error
	RotateToken(
		ctx context.Context,
		userID uuid.UUID,
		oldHash, newHash string,
		expiresAt time.Time,
	) error
	RevokeToken(ctx context.Context, userID uuid.UUID, hash string) error
	RevokeAllTokens(ctx context.Context, userID uuid.UUID) error
}

// hashToken is how refresh tokens are stored in the ledger. The raw token
// never touches the database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newPendingHandle() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (c *Controller) SignUp(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.SignUpRequest,
) (*dto.AuthResponse, *dto.StepUpResponse, error) {
	const op = "auth.SignUp.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	hashed, err := c.pw.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	id, err := c.repo.CreateUser(
		ctx, &dto.CreateUserRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: hashed,
		},
	)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, nil, ErrAlreadyExists
		}
		return nil, nil, err
	}

	if c.pw.RequireStepUp(auth.MethodPassword) {
		step, err := c.startStepUp(ctx, id, req.Email)
		if err != nil {
			return nil, nil, err
		}
		return nil, step, nil
	}

	pair, deviceID, err := c.genPair(ctx, d, id)
	if err != nil {
		return nil, nil, err
	}

	return &dto.AuthResponse{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		DeviceID: deviceID,
	}, nil, nil
}

// Authenticate verifies the primary credential. Tokens are withheld: the
// caller is moved to the step-up stage and must redeem the returned
// challenge handle together with the emailed code.
func (c *Controller) Authenticate(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.EmailAndPasswordRequest,
) (*dto.StepUpResponse, error) {
	const op = "auth.Authenticate.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	err = c.pw.ComparePasswords([]byte(res.Password), []byte(req.Password))
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return c.startStepUp(ctx, res.ID, res.Email)
}

// startStepUp mints a fresh secret and single-use handle, overwriting any
// prior challenge for the account. Resubmitting login while a challenge is
// pending therefore restarts it rather than erroring.
func (c *Controller) startStepUp(
	ctx context.Context,
	uid uuid.UUID,
	email string,
) (*dto.StepUpResponse, error) {
	pending, err := newPendingHandle()
	if err != nil {
		return nil, err
	}

	return c.issueChallenge(ctx, uid, email, pending)
}

// issueChallenge rotates the secret, stores the challenge and dispatches
// the code. The handle is the caller's choice so a resend can keep the one
// the client already holds.
func (c *Controller) issueChallenge(
	ctx context.Context,
	uid uuid.UUID,
	email, pending string,
) (*dto.StepUpResponse, error) {
	const op = "auth.issueChallenge.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	secret, err := c.otp.NewSecret()
	if err != nil {
		return nil, err
	}

	code, err := c.otp.GenerateCode(secret)
	if err != nil {
		return nil, err
	}

	ch := cache.Challenge{
		Secret:    secret,
		Pending:   pending,
		ExpiresAt: time.Now().Add(config.ChallengeDuration).Unix(),
	}

	// TTL carries a grace period past the logical expiry so an expired
	// challenge is still observable and reported as expired, not absent.
	err = c.cache.SetChallenge(ctx, uid, ch, config.ChallengeDuration+time.Minute)
	if err != nil {
		return nil, err
	}

	if err = c.email.SendStepUpCode(ctx, email, code); err != nil {
		c.cache.DeleteChallenge(ctx, uid)
		return nil, err
	}

	return &dto.StepUpResponse{
		StepUpPending: true,
		Challenge:     pending,
	}, nil
}

// SendStepUpCode handles the resend path. The pending handle issued at
// login survives the resend when one exists: only the secret rotates, so
// the prior code stops working the moment a new one is sent.
func (c *Controller) SendStepUpCode(ctx context.Context, email string) (*dto.StepUpResponse, error) {
	const op = "auth.SendStepUpCode.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prior, err := c.cache.GetChallenge(ctx, res.ID)
	if err != nil && !errors.Is(err, cache.ErrNotFoundInCache) {
		return nil, err
	}

	if prior.Pending != "" {
		return c.issueChallenge(ctx, res.ID, res.Email, prior.Pending)
	}

	return c.startStepUp(ctx, res.ID, res.Email)
}

func (c *Controller) VerifyStepUpCode(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.VerifyCodeRequest,
) (*dto.AuthResponse, error) {
	const op = "auth.VerifyStepUpCode.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ch, err := c.cache.GetChallenge(ctx, res.ID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFoundInCache) {
			return nil, ErrNoChallenge
		}
		return nil, err
	}

	if time.Now().Unix() > ch.ExpiresAt {
		c.cache.DeleteChallenge(ctx, res.ID)
		return nil, ErrChallengeExpired
	}

	// The handle stands in for the original credentials: a forged or stale
	// second-factor attempt without it is rejected outright.
	if subtle.ConstantTimeCompare([]byte(ch.Pending), []byte(req.Challenge)) != 1 {
		return nil, auth.ErrInvalidCredentials
	}

	if !c.otp.Verify(req.Code, ch.Secret) {
		return nil, ErrCodeIsNotValid
	}

	// Consume is the atomic commit point. A concurrent verification or a
	// resend may have removed or replaced the challenge since the read;
	// both cases mean this attempt lost and must not be honored.
	consumed, err := c.cache.ConsumeChallenge(ctx, res.ID)
	if err != nil || consumed.Pending != ch.Pending || consumed.Secret != ch.Secret {
		return nil, ErrNoChallenge
	}

	pair, deviceID, err := c.genPair(ctx, d, res.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		DeviceID: deviceID,
	}, nil
}

func (c *Controller) GoogleAuthURL() (string, error) {
	return c.oauth.AuthURL()
}

func (c *Controller) GoogleCallback(
	ctx context.Context,
	d *dto.DeviceRequest,
	code string,
) (*dto.AuthResponse, *dto.StepUpResponse, error) {
	const op = "auth.GoogleCallback.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	identity, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	user, err := c.repo.GetUserByEmail(ctx, identity.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, err
	}

	var uid uuid.UUID
	if user == nil || errors.Is(err, repo.ErrNotFound) {
		uid, err = c.createFederatedUser(ctx, identity)
		if err != nil {
			return nil, nil, err
		}
	} else {
		uid = user.ID
		if user.GoogleID == "" {
			if err = c.repo.LinkGoogleID(ctx, uid, identity.GoogleID, identity.Name); err != nil {
				return nil, nil, err
			}
		}
	}

	if c.pw.RequireStepUp(auth.MethodGoogle) {
		step, err := c.startStepUp(ctx, uid, identity.Email)
		if err != nil {
			return nil, nil, err
		}
		return nil, step, nil
	}

	pair, deviceID, err := c.genPair(ctx, d, uid)
	if err != nil {
		return nil, nil, err
	}

	return &dto.AuthResponse{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		DeviceID: deviceID,
	}, nil, nil
}

func (c *Controller) createFederatedUser(ctx context.Context, identity google.Identity) (uuid.UUID, error) {
	const op = "auth.createFederatedUser.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	// Federated accounts never log in with this password; it only keeps
	// the credential column non-empty.
	random, err := newPendingHandle()
	if err != nil {
		return uuid.Nil, err
	}

	hashed, err := c.pw.Hash(random)
	if err != nil {
		return uuid.Nil, err
	}

	return c.repo.CreateUser(
		ctx, &dto.CreateUserRequest{
			Name:     identity.Name,
			Email:    identity.Email,
			Password: hashed,
			GoogleID: identity.GoogleID,
		},
	)
}

// genPair issues a fresh access/refresh pair, records the hashed refresh
// token in the ledger and registers the device, all under one transaction
// on the repo side.
func (c *Controller) genPair(
	ctx context.Context,
	d *dto.DeviceRequest,
	uid uuid.UUID,
) (dto.TokenPair, string, error) {
	const op = "auth.genPair.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var res dto.TokenPair
	access, refresh, err := c.au.GenPair(ctx, uid)
	if err != nil {
		return res, "", err
	}

	device := auth.GenerateDevice(d)
	device.ID = c.pw.Fingerprint(d.UA, d.IP)
	device.UserID = uid

	err = c.repo.CreateToken(ctx, uid, hashToken(refresh), c.au.GetRefreshTime(), &device)
	if err != nil {
		return res, "", err
	}

	res.Access = access
	res.Refresh = refresh

	return res, device.ID, nil
}

func (c *Controller) Refresh(
	ctx context.Context,
	d *dto.DeviceRequest,
	deviceID string,
	req *dto.RefreshRequest,
) (*dto.TokenPair, error) {
	const op = "auth.Refresh.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims, err := c.au.ParseClaims(ctx, req.Refresh, jwt.Refresh)
	if err != nil {
		return nil, err
	}

	access, refresh, err := c.au.GenPair(ctx, claims.UID)
	if err != nil {
		return nil, err
	}

	// Conditional swap on the old hash: a token used twice after rotation
	// fails here the second time.
	err = c.repo.RotateToken(
		ctx, claims.UID, hashToken(req.Refresh), hashToken(refresh), c.au.GetRefreshTime(),
	)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			zap.L().Info(
				"refresh token not recognized",
				zap.String("op", op),
				zap.String("userID", claims.UID.String()),
			)
			return nil, auth.ErrTokenRevoked
		}
		return nil, err
	}

	if deviceID != "" {
		if err = c.repo.TouchDevice(ctx, claims.UID, deviceID); err != nil {
			zap.L().Debug(
				"failed to touch device on refresh",
				zap.String("op", op),
				zap.String("deviceID", deviceID),
				zap.Error(err),
			)
		}
	}

	return &dto.TokenPair{
		Access:  access,
		Refresh: refresh,
	}, nil
}

// RequestPasswordReset mails a single-use reset link. An unknown email is
// acknowledged the same as a known one, so the endpoint cannot be used to
// enumerate accounts.
func (c *Controller) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "auth.RequestPasswordReset.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			zap.L().Debug(
				"password reset requested for unknown email",
				zap.String("op", op),
			)
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	err = c.cache.SetResetToken(ctx, hashToken(token), res.ID, config.ResetTokenDuration)
	if err != nil {
		return err
	}

	return c.email.SendPasswordResetLink(ctx, res.Email, token)
}

// ResetPassword redeems the reset token and replaces the credential. Every
// refresh token of the account is revoked: a session minted before the
// reset does not survive it.
func (c *Controller) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	const op = "auth.ResetPassword.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	uid, err := c.cache.ConsumeResetToken(ctx, hashToken(req.Token))
	if err != nil {
		if errors.Is(err, cache.ErrNotFoundInCache) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hashed, err := c.pw.Hash(req.Password)
	if err != nil {
		return err
	}

	if err = c.repo.UpdateUserPassword(ctx, uid, hashed); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// The account vanished between issuing and redeeming the token.
			return ErrResetTokenInvalid
		}
		return err
	}

	if err = c.repo.RevokeAllTokens(ctx, uid); err != nil {
		zap.L().Warn(
			"failed to revoke sessions after password reset",
			zap.String("op", op),
			zap.String("userID", uid.String()),
			zap.Error(err),
		)
	}

	return nil
}

// Logout revokes the ledger entry for the presented refresh token. Best
// effort by contract: the client clears its local tokens regardless.
func (c *Controller) Logout(ctx context.Context, req *dto.RefreshRequest) error {
	const op = "auth.Logout.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims, err := c.au.ParseClaims(ctx, req.Refresh, jwt.Refresh)
	if err != nil {
		// An expired or garbled token has nothing to revoke.
		return nil
	}

	err = c.repo.RevokeToken(ctx, claims.UID, hashToken(req.Refresh))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	return nil
}
