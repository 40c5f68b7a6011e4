package auth

import (
	"strings"
	"testing"

	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/dto"
	"github.com/stretchr/testify/assert"
)

func newTestCore() *Core {
	return New(
		config.Config{
			Auth: config.AuthConfig{
				StepUpMethods: []string{"password"},
				DeviceSalt:    "test-salt",
			},
		},
	)
}

func TestCore_HashAndCompare(t *testing.T) {
	core := newTestCore()

	hashed, err := core.Hash("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))

	assert.NoError(t, core.ComparePasswords([]byte(hashed), []byte("correct horse battery staple")))

	err = core.ComparePasswords([]byte(hashed), []byte("wrong password"))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCore_RequireStepUp(t *testing.T) {
	core := newTestCore()

	assert.True(t, core.RequireStepUp(MethodPassword))
	assert.False(t, core.RequireStepUp(MethodGoogle))

	all := New(
		config.Config{
			Auth: config.AuthConfig{StepUpMethods: []string{"password", "google"}},
		},
	)
	assert.True(t, all.RequireStepUp(MethodGoogle))
}

func TestCore_Fingerprint(t *testing.T) {
	core := newTestCore()

	first := core.Fingerprint("Mozilla/5.0", "203.0.113.7")
	second := core.Fingerprint("Mozilla/5.0", "203.0.113.7")

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second, "ids carry a timestamp component and must differ across mints")
}

func TestGenerateDevice(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		ip         string
		deviceType string
		browser    string
		os         string
		location   string
	}{
		{
			name:       "chrome on windows",
			ua:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/126.0 Safari/537.36",
			ip:         "203.0.113.7",
			deviceType: "desktop",
			browser:    "Chrome",
			os:         "Windows",
			location:   "Unknown Location",
		},
		{
			name:       "edge wins over chrome",
			ua:         "Mozilla/5.0 (Windows NT 10.0) Chrome/126.0 Safari/537.36 Edg/126.0",
			ip:         "203.0.113.7",
			deviceType: "desktop",
			browser:    "Edge",
			os:         "Windows",
			location:   "Unknown Location",
		},
		{
			name:       "safari on iphone",
			ua:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile/15E148 Safari/604.1",
			ip:         "192.168.1.20",
			deviceType: "mobile",
			browser:    "Safari",
			os:         "iOS",
			location:   "Local Network",
		},
		{
			name:       "firefox on linux",
			ua:         "Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0",
			ip:         "10.0.0.4",
			deviceType: "desktop",
			browser:    "Firefox",
			os:         "Linux",
			location:   "Local Network",
		},
		{
			name:       "empty user agent",
			ua:         "",
			ip:         "127.0.0.1",
			deviceType: "unknown",
			browser:    "Unknown",
			os:         "Unknown",
			location:   "Local Network",
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				d := GenerateDevice(&dto.DeviceRequest{UA: tt.ua, IP: tt.ip})

				assert.Equal(t, tt.deviceType, d.DeviceType)
				assert.Equal(t, tt.browser, d.Browser)
				assert.Equal(t, tt.os, d.OS)
				assert.Equal(t, tt.location, d.Location)
				assert.Equal(t, tt.ua, d.UA)
				assert.Equal(t, tt.ip, d.IP)
				assert.False(t, d.LastActive.IsZero())
			},
		)
	}
}
