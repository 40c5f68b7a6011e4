package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/nimbus-sync/nimbus/internal/dto"
	md "github.com/nimbus-sync/nimbus/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Method is a credential-verification path. The step-up requirement is a
// per-method policy decision: password logins need the emailed code,
// federated logins are trusted to carry their provider's own MFA.
type Method string

const (
	MethodPassword Method = "password"
	MethodGoogle   Method = "google"
)

type PasswordPort interface {
	Hash(pswd string) (string, error)
	ComparePasswords(hashed, pswd []byte) error
}

type Core struct {
	stepUp map[Method]bool
	salt   string
}

func New(conf config.Config) *Core {
	stepUp := make(map[Method]bool, len(conf.Auth.StepUpMethods))
	for _, m := range conf.Auth.StepUpMethods {
		stepUp[Method(m)] = true
	}

	return &Core{
		stepUp: stepUp,
		salt:   conf.Auth.DeviceSalt,
	}
}

func (c *Core) Hash(pswd string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pswd), bcrypt.DefaultCost)
	return string(bytes), err
}

func (c *Core) ComparePasswords(hashed, pswd []byte) error {
	if err := bcrypt.CompareHashAndPassword(hashed, pswd); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (c *Core) RequireStepUp(m Method) bool {
	return c.stepUp[m]
}

// Fingerprint mints a device id from the client's user-agent and address.
// The timestamp component makes it non-reproducible: the client is expected
// to persist the first returned id and send it back in X-Device-Id.
func (c *Core) Fingerprint(ua, ip string) string {
	sum := sha256.Sum256(
		[]byte(fmt.Sprintf("%s|%s|%s|%d", ua, ip, c.salt, time.Now().UnixNano())),
	)
	return hex.EncodeToString(sum[:16])
}

// GenerateDevice derives display metadata from the raw user-agent the way
// browsers report themselves. Best effort only.
func GenerateDevice(d *dto.DeviceRequest) md.Device {
	deviceType := "desktop"
	switch {
	case strings.Contains(d.UA, "Mobile"):
		deviceType = "mobile"
	case strings.Contains(d.UA, "Tablet"):
		deviceType = "tablet"
	case d.UA == "":
		deviceType = "unknown"
	}

	browser := "Unknown"
	switch {
	case strings.Contains(d.UA, "Edg"):
		browser = "Edge"
	case strings.Contains(d.UA, "Chrome"):
		browser = "Chrome"
	case strings.Contains(d.UA, "Firefox"):
		browser = "Firefox"
	case strings.Contains(d.UA, "Safari"):
		browser = "Safari"
	}

	os := "Unknown"
	switch {
	case strings.Contains(d.UA, "Windows"):
		os = "Windows"
	case strings.Contains(d.UA, "Android"):
		os = "Android"
	case strings.Contains(d.UA, "iPhone"), strings.Contains(d.UA, "iPad"):
		os = "iOS"
	case strings.Contains(d.UA, "Mac"):
		os = "macOS"
	case strings.Contains(d.UA, "Linux"):
		os = "Linux"
	}

	return md.Device{
		Name:       fmt.Sprintf("%s on %s", browser, os),
		DeviceType: deviceType,
		OS:         os,
		Browser:    browser,
		UA:         d.UA,
		IP:         d.IP,
		Location:   locationHint(d.IP),
		LastActive: time.Now(),
	}
}

func locationHint(ip string) string {
	for _, prefix := range []string{"127.", "192.168.", "10.", "172.", "::1"} {
		if strings.HasPrefix(ip, prefix) {
			return "Local Network"
		}
	}
	return "Unknown Location"
}
