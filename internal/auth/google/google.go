package google

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	authEndpoint  = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint = "https://oauth2.googleapis.com/token"
	infoEndpoint  = "https://oauth2.googleapis.com/tokeninfo"
)

var ErrExchangeFailed = errors.New("failed to exchange authorization code")
var ErrDisabled = errors.New("google oauth is not configured")

// Identity is what the provider asserts about the user after a successful
// code exchange.
type Identity struct {
	Email    string
	Name     string
	GoogleID string
}

type Port interface {
	AuthURL() (string, error)
	Exchange(ctx context.Context, code string) (Identity, error)
}

type Core struct {
	enabled      bool
	clientID     string
	clientSecret string
	redirectURL  string
	client       *http.Client
}

func New(conf config.Config) *Core {
	return &Core{
		enabled:      conf.Auth.Google.Enabled,
		clientID:     conf.Auth.Google.ClientID,
		clientSecret: conf.Auth.Google.ClientSecret,
		redirectURL:  conf.Auth.Google.RedirectURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Core) AuthURL() (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}

	q := url.Values{
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURL},
		"response_type": {"code"},
		"scope":         {"openid profile email"},
		"access_type":   {"offline"},
	}

	return authEndpoint + "?" + q.Encode(), nil
}

func (c *Core) Exchange(ctx context.Context, code string) (Identity, error) {
	const op = "auth.Exchange.google"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if !c.enabled {
		return Identity{}, ErrDisabled
	}

	form := url.Values{
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to exchange code", zap.Error(err))
		return Identity{}, ErrExchangeFailed
	}
	defer closeBody(resp.Body, span)

	if resp.StatusCode != http.StatusOK {
		span.SetTag(config.ErrorSpanTag, true)
		return Identity{}, ErrExchangeFailed
	}

	var tokens struct {
		IDToken string `json:"id_token"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return Identity{}, ErrExchangeFailed
	}

	return c.identity(ctx, tokens.IDToken, span)
}

func (c *Core) identity(ctx context.Context, idToken string, span opentracing.Span) (Identity, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, infoEndpoint+"?id_token="+url.QueryEscape(idToken), nil,
	)
	if err != nil {
		return Identity{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to verify id token", zap.Error(err))
		return Identity{}, ErrExchangeFailed
	}
	defer closeBody(resp.Body, span)

	if resp.StatusCode != http.StatusOK {
		span.SetTag(config.ErrorSpanTag, true)
		return Identity{}, ErrExchangeFailed
	}

	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Sub      string `json:"sub"`
		Audience string `json:"aud"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Identity{}, ErrExchangeFailed
	}

	if payload.Audience != c.clientID {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Warn("id token audience mismatch")
		return Identity{}, ErrExchangeFailed
	}

	return Identity{
		Email:    payload.Email,
		Name:     payload.Name,
		GoogleID: payload.Sub,
	}, nil
}

func closeBody(body io.ReadCloser, span opentracing.Span) {
	if err := body.Close(); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to close body", zap.Error(err))
	}
}
