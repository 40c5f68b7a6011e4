// Package client is the Go SDK for the auth service. It mirrors the
// server's session lifecycle on the consuming side: tokens live in a
// durable store, a startup call recovers the previous session, and every
// protected request retries exactly once after a shared refresh.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 10 * time.Second
	ResendCoolDown = 30 * time.Second

	deviceIDHeader = "X-Device-Id"
)

type State int

const (
	StateAnonymous State = iota
	StateStepUpPending
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateStepUpPending:
		return "step-up-pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

type Device struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DeviceType string    `json:"deviceType"`
	OS         string    `json:"os"`
	Browser    string    `json:"browser"`
	Location   string    `json:"location"`
	LastActive time.Time `json:"lastActive"`
	IsCurrent  bool      `json:"isCurrent"`
}

type stepUp struct {
	email     string
	challenge string
	lastSent  time.Time
}

// Client drives the authentication flow and keeps the session alive. It
// is safe for concurrent use; concurrent 401s share a single refresh.
type Client struct {
	base  string
	hc    *http.Client
	store *TokenStore

	mu      sync.Mutex
	state   State
	sess    Session
	pending stepUp

	refresh singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(baseURL, storePath string, opts ...Option) *Client {
	c := &Client{
		base:  baseURL,
		hc:    &http.Client{Timeout: DefaultTimeout},
		store: NewTokenStore(storePath),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) DeviceID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.DeviceID
}

// Recover hydrates the session from the durable store. With both tokens
// present it fetches the profile; a 401 gets exactly one refresh attempt,
// and a failed refresh clears the store back to anonymous.
func (c *Client) Recover(ctx context.Context) (*Profile, error) {
	sess, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	if sess.Access == "" || sess.Refresh == "" {
		return nil, nil
	}

	c.mu.Lock()
	c.sess = sess
	c.state = StateAuthenticated
	c.mu.Unlock()

	profile, err := c.Me(ctx)
	if err != nil {
		if c.State() == StateAnonymous {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Login submits credentials. A step-up response moves the client to
// StateStepUpPending; VerifyCode completes the flow.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var res struct {
		StepUpPending bool   `json:"stepUpPending"`
		Challenge     string `json:"challenge"`
	}
	err := c.call(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = StateStepUpPending
	c.pending = stepUp{email: email, challenge: res.Challenge, lastSent: time.Now()}
	c.mu.Unlock()
	return nil
}

// SignUp registers an account. Like Login, tokens are withheld until the
// emailed code is verified.
func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	var res struct {
		StepUpPending bool   `json:"stepUpPending"`
		Challenge     string `json:"challenge"`
	}
	err := c.call(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &res)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = StateStepUpPending
	c.pending = stepUp{email: email, challenge: res.Challenge, lastSent: time.Now()}
	c.mu.Unlock()
	return nil
}

// ResendCode requests a fresh step-up code. The cool-down is cosmetic,
// enforced locally so the UI cannot hammer the notifier.
func (c *Client) ResendCode(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateStepUpPending {
		c.mu.Unlock()
		return ErrNoPendingStepUp
	}
	if wait := ResendCoolDown - time.Since(c.pending.lastSent); wait > 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s left", ErrResendCoolDown, wait.Round(time.Second))
	}
	email := c.pending.email
	c.mu.Unlock()

	var res struct {
		Challenge string `json:"challenge"`
	}
	if err := c.call(ctx, http.MethodPost, "/auth/2fa/send", map[string]string{
		"email": email,
	}, &res); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state == StateStepUpPending {
		if res.Challenge != "" {
			c.pending.challenge = res.Challenge
		}
		c.pending.lastSent = time.Now()
	}
	c.mu.Unlock()
	return nil
}

// VerifyCode redeems the pending challenge with the emailed code and
// persists the issued tokens.
func (c *Client) VerifyCode(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.state != StateStepUpPending {
		c.mu.Unlock()
		return ErrNoPendingStepUp
	}
	pending := c.pending
	c.mu.Unlock()

	var res struct {
		Access   string `json:"access"`
		Refresh  string `json:"refresh"`
		DeviceID string `json:"deviceId"`
	}
	err := c.call(ctx, http.MethodPost, "/auth/2fa/verify", map[string]string{
		"email":     pending.email,
		"code":      code,
		"challenge": pending.challenge,
	}, &res)
	if err != nil {
		return err
	}

	sess := Session{Access: res.Access, Refresh: res.Refresh, DeviceID: res.DeviceID}
	if err = c.store.Save(sess); err != nil {
		return err
	}

	c.mu.Lock()
	c.sess = sess
	c.state = StateAuthenticated
	c.pending = stepUp{}
	c.mu.Unlock()
	return nil
}

// AbandonStepUp discards local pending state. The server-side challenge
// is left to expire on its own.
func (c *Client) AbandonStepUp() {
	c.mu.Lock()
	if c.state == StateStepUpPending {
		c.state = StateAnonymous
		c.pending = stepUp{}
	}
	c.mu.Unlock()
}

// Logout clears the local session unconditionally. The remote revoke is
// best effort: deleting the local tokens is what actually ends the
// device's ability to act.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.sess.Refresh
	c.sess = Session{}
	c.state = StateAnonymous
	c.pending = stepUp{}
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		return err
	}

	if refresh != "" {
		_ = c.call(ctx, http.MethodPost, "/auth/logout", map[string]string{
			"refresh": refresh,
		}, nil)
	}
	return nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	profile := &Profile{}
	if err := c.protected(ctx, http.MethodGet, "/users/me", nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.protected(ctx, http.MethodGet, "/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *Client) TouchDevice(ctx context.Context) error {
	return c.protected(ctx, http.MethodPut, "/devices/active", nil, nil)
}

func (c *Client) RemoveDevice(ctx context.Context, deviceID string) error {
	return c.protected(ctx, http.MethodDelete, "/devices/"+deviceID, nil, nil)
}

// protected performs an authenticated request with the single-retry
// pattern: a 401 triggers one shared refresh, then one replay. A second
// 401 means the session is gone.
func (c *Client) protected(ctx context.Context, method, path string, body, dest any) error {
	c.mu.Lock()
	access := c.sess.Access
	c.mu.Unlock()

	if access == "" {
		return ErrNotAuthenticated
	}

	err := c.do(ctx, method, path, access, body, dest)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	if err = c.doRefresh(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	access = c.sess.Access
	c.mu.Unlock()
	return c.do(ctx, method, path, access, body, dest)
}

// doRefresh rotates the refresh token. Concurrent callers share one
// in-flight rotation so a burst of 401s cannot invalidate each other's
// new token. Any failure clears the session back to anonymous.
func (c *Client) doRefresh(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		c.mu.Lock()
		refresh := c.sess.Refresh
		c.mu.Unlock()

		if refresh == "" {
			return nil, ErrNotAuthenticated
		}

		var res struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		}
		if err := c.call(ctx, http.MethodPost, "/auth/refresh", map[string]string{
			"refresh": refresh,
		}, &res); err != nil {
			c.clearSession()
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}

		c.mu.Lock()
		c.sess.Access = res.Access
		c.sess.Refresh = res.Refresh
		sess := c.sess
		c.mu.Unlock()

		if err := c.store.Save(sess); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.sess = Session{}
	c.state = StateAnonymous
	c.mu.Unlock()
	_ = c.store.Clear()
}

// call performs an unauthenticated request.
func (c *Client) call(ctx context.Context, method, path string, body, dest any) error {
	return c.do(ctx, method, path, "", body, dest)
}

func (c *Client) do(ctx context.Context, method, path, access string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	c.mu.Lock()
	deviceID := c.sess.DeviceID
	c.mu.Unlock()
	if deviceID != "" {
		req.Header.Set(deviceIDHeader, deviceID)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if dest == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, dest)
}
