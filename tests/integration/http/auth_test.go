package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0 Safari/537.36"
	testPassword = "super-secret-password"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type authResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	DeviceID string `json:"deviceId"`
}

type stepUpResponse struct {
	StepUpPending bool   `json:"stepUpPending"`
	Challenge     string `json:"challenge"`
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, ua, access, deviceID string, payload any) (*http.Response, envelope) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	if deviceID != "" {
		req.Header.Set("X-Device-Id", deviceID)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	res := envelope{}
	_ = json.NewDecoder(resp.Body).Decode(&res)
	return resp, res
}

// signUpAndVerify walks the full registration flow: signup, read the code
// off the captured email, verify, collect tokens.
func signUpAndVerify(t *testing.T, ts *httptest.Server, email *capturedEmail, addr, ua string) authResponse {
	t.Helper()

	resp, res := doJSON(t, ts, http.MethodPost, "/auth/signup", ua, "", "", map[string]string{
		"email":    addr,
		"password": testPassword,
		"name":     "Integration User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	step := stepUpResponse{}
	require.NoError(t, json.Unmarshal(res.Data, &step))
	require.True(t, step.StepUpPending)
	require.NotEmpty(t, step.Challenge)
	require.Len(t, email.LastCode(), 6)

	resp, res = doJSON(t, ts, http.MethodPost, "/auth/2fa/verify", ua, "", "", map[string]string{
		"email":     addr,
		"code":      email.LastCode(),
		"challenge": step.Challenge,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokens := authResponse{}
	require.NoError(t, json.Unmarshal(res.Data, &tokens))
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)
	require.NotEmpty(t, tokens.DeviceID)
	return tokens
}

func TestAuthLifecycle(t *testing.T) {
	ts, email, cleanup := setupTestServer()
	defer cleanup(t)

	const addr = "lifecycle@example.com"

	t.Run(
		"ExistsBeforeSignup", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/users/exists", testUA, "", "", map[string]string{
				"email": addr,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"exists": false}`, string(res.Data))
		},
	)

	var challenge string
	t.Run(
		"SignUpStartsStepUp", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/auth/signup", testUA, "", "", map[string]string{
				"email":    addr,
				"password": testPassword,
				"name":     "Integration User",
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			step := stepUpResponse{}
			require.NoError(t, json.Unmarshal(res.Data, &step))
			assert.True(t, step.StepUpPending)
			require.NotEmpty(t, step.Challenge)
			challenge = step.Challenge

			require.Len(t, email.LastCode(), 6)
		},
	)

	t.Run(
		"DuplicateSignUpRejected", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/signup", testUA, "", "", map[string]string{
				"email":    addr,
				"password": testPassword,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"ExistsAfterSignup", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/users/exists", testUA, "", "", map[string]string{
				"email": addr,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"exists": true}`, string(res.Data))
		},
	)

	t.Run(
		"WrongCodeRejected", func(t *testing.T) {
			wrong := "000000"
			if email.LastCode() == wrong {
				wrong = "000001"
			}

			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/2fa/verify", testUA, "", "", map[string]string{
				"email":     addr,
				"code":      wrong,
				"challenge": challenge,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"ResendRotatesCode", func(t *testing.T) {
			before := email.LastCode()

			resp, res := doJSON(t, ts, http.MethodPost, "/auth/2fa/send", testUA, "", "", map[string]string{
				"email": addr,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			step := stepUpResponse{}
			require.NoError(t, json.Unmarshal(res.Data, &step))
			require.NotEmpty(t, step.Challenge)
			challenge = step.Challenge

			// a fresh secret means a fresh code, except for the rare
			// collision
			if before == email.LastCode() {
				t.Log("resend produced the same code")
			}
		},
	)

	var tokens authResponse
	t.Run(
		"VerifyIssuesTokens", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/auth/2fa/verify", testUA, "", "", map[string]string{
				"email":     addr,
				"code":      email.LastCode(),
				"challenge": challenge,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			require.NoError(t, json.Unmarshal(res.Data, &tokens))
			assert.NotEmpty(t, tokens.Access)
			assert.NotEmpty(t, tokens.Refresh)
			assert.NotEmpty(t, tokens.DeviceID)
		},
	)

	t.Run(
		"ChallengeIsSingleUse", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/2fa/verify", testUA, "", "", map[string]string{
				"email":     addr,
				"code":      email.LastCode(),
				"challenge": challenge,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"AccessTokenAuthorizes", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodGet, "/users/me", testUA, tokens.Access, tokens.DeviceID, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(res.Data), addr)
		},
	)

	oldRefresh := ""
	t.Run(
		"RefreshRotatesPair", func(t *testing.T) {
			oldRefresh = tokens.Refresh

			resp, res := doJSON(t, ts, http.MethodPost, "/auth/refresh", testUA, "", tokens.DeviceID, map[string]string{
				"refresh": tokens.Refresh,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			pair := struct {
				Access  string `json:"access"`
				Refresh string `json:"refresh"`
			}{}
			require.NoError(t, json.Unmarshal(res.Data, &pair))
			require.NotEmpty(t, pair.Refresh)
			assert.NotEqual(t, oldRefresh, pair.Refresh)

			tokens.Access = pair.Access
			tokens.Refresh = pair.Refresh
		},
	)

	t.Run(
		"RotatedTokenRejected", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/refresh", testUA, "", tokens.DeviceID, map[string]string{
				"refresh": oldRefresh,
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		},
	)

	t.Run(
		"LogoutRevokes", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/logout", testUA, "", "", map[string]string{
				"refresh": tokens.Refresh,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			resp, _ = doJSON(t, ts, http.MethodPost, "/auth/refresh", testUA, "", tokens.DeviceID, map[string]string{
				"refresh": tokens.Refresh,
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		},
	)

	t.Run(
		"LoginWrongPassword", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/login", testUA, "", "", map[string]string{
				"email":    addr,
				"password": "not-the-password",
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"LoginStartsNewSession", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/auth/login", testUA, "", "", map[string]string{
				"email":    addr,
				"password": testPassword,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			step := stepUpResponse{}
			require.NoError(t, json.Unmarshal(res.Data, &step))
			require.True(t, step.StepUpPending)

			resp, res = doJSON(t, ts, http.MethodPost, "/auth/2fa/verify", testUA, "", "", map[string]string{
				"email":     addr,
				"code":      email.LastCode(),
				"challenge": step.Challenge,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			fresh := authResponse{}
			require.NoError(t, json.Unmarshal(res.Data, &fresh))
			assert.NotEmpty(t, fresh.Access)
		},
	)

	t.Run(
		"UnknownEmailResendRejected", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/2fa/send", testUA, "", "", map[string]string{
				"email": fmt.Sprintf("missing-%s", addr),
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)
}

func TestPasswordReset(t *testing.T) {
	ts, email, cleanup := setupTestServer()
	defer cleanup(t)

	const (
		addr        = "reset@example.com"
		newPassword = "brand-new-password"
	)

	tokens := signUpAndVerify(t, ts, email, addr, testUA)

	t.Run(
		"UnknownEmailAcknowledged", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/password/forgot", testUA, "", "", map[string]string{
				"email": "nobody@example.com",
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		},
	)

	t.Run(
		"RequestDeliversToken", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/password/forgot", testUA, "", "", map[string]string{
				"email": addr,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NotEmpty(t, email.LastResetToken())
		},
	)

	t.Run(
		"BogusTokenRejected", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/password/reset", testUA, "", "", map[string]string{
				"token":    "not-a-real-token",
				"password": newPassword,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"ResetReplacesPassword", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/password/reset", testUA, "", "", map[string]string{
				"token":    email.LastResetToken(),
				"password": newPassword,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
		},
	)

	t.Run(
		"TokenIsSingleUse", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/password/reset", testUA, "", "", map[string]string{
				"token":    email.LastResetToken(),
				"password": "yet-another-password",
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"OldPasswordRejected", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/login", testUA, "", "", map[string]string{
				"email":    addr,
				"password": testPassword,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		},
	)

	t.Run(
		"SessionsRevokedByReset", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/refresh", testUA, "", tokens.DeviceID, map[string]string{
				"refresh": tokens.Refresh,
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		},
	)

	t.Run(
		"NewPasswordLogsIn", func(t *testing.T) {
			resp, res := doJSON(t, ts, http.MethodPost, "/auth/login", testUA, "", "", map[string]string{
				"email":    addr,
				"password": newPassword,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			step := stepUpResponse{}
			require.NoError(t, json.Unmarshal(res.Data, &step))
			assert.True(t, step.StepUpPending)
		},
	)
}
