package otp

import (
	"crypto/rand"
	"encoding/base32"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const secretLen = 20

var opts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type Port interface {
	NewSecret() (string, error)
	GenerateCode(secret string) (string, error)
	Verify(code, secret string) bool
}

type Core struct{}

func New() *Core {
	return &Core{}
}

// NewSecret mints a fresh base32 secret for a single challenge. Secrets are
// never reused across challenges, so the code is effectively one-time even
// though TOTP itself is time-windowed.
func (c *Core) NewSecret() (string, error) {
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

func (c *Core) GenerateCode(secret string) (string, error) {
	return totp.GenerateCodeCustom(secret, time.Now(), opts)
}

// Verify checks the code against the secret with a tolerance of one step in
// either direction. The challenge's own TTL remains the primary expiry.
func (c *Core) Verify(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), opts)
	return err == nil && ok
}
