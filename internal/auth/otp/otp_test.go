package otp

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
)

func TestCore_NewSecret(t *testing.T) {
	core := New()

	first, err := core.NewSecret()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := core.NewSecret()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCore_GenerateAndVerify(t *testing.T) {
	core := New()

	secret, err := core.NewSecret()
	assert.NoError(t, err)

	code, err := core.GenerateCode(secret)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	assert.True(t, core.Verify(code, secret))
	assert.False(t, core.Verify("000000", secret))
	assert.False(t, core.Verify(code, "JBSWY3DPEHPK3PXP"))
	assert.False(t, core.Verify("not-a-code", secret))
}

func TestCore_VerifyClockSkew(t *testing.T) {
	core := New()

	secret, err := core.NewSecret()
	assert.NoError(t, err)

	// A code minted one step in the past still passes the ±1 window, two
	// steps back does not.
	oneBack, err := totp.GenerateCodeCustom(secret, time.Now().Add(-30*time.Second), opts)
	assert.NoError(t, err)
	assert.True(t, core.Verify(oneBack, secret))

	twoBack, err := totp.GenerateCodeCustom(secret, time.Now().Add(-90*time.Second), opts)
	assert.NoError(t, err)
	assert.False(t, core.Verify(twoBack, secret))
}

func TestOpts(t *testing.T) {
	assert.Equal(t, uint(30), opts.Period)
	assert.Equal(t, uint(1), opts.Skew)
	assert.Equal(t, otp.DigitsSix, opts.Digits)
}
