package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func TestUserLifecycle(t *testing.T) {
	ts, email, cleanup := setupTestServer()
	defer cleanup(t)

	const addr = "profile@example.com"
	tokens := signUpAndVerify(t, ts, email, addr, testUA)

	getMe := func(t *testing.T) (int, profileResponse) {
		t.Helper()
		resp, res := doJSON(t, ts, http.MethodGet, "/users/me", testUA, tokens.Access, tokens.DeviceID, nil)

		profile := profileResponse{}
		_ = json.Unmarshal(res.Data, &profile)
		return resp.StatusCode, profile
	}

	t.Run(
		"GetProfile", func(t *testing.T) {
			status, profile := getMe(t)
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, addr, profile.Email)
			assert.Equal(t, "Integration User", profile.Name)
		},
	)

	t.Run(
		"MeRequiresAuth", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodGet, "/users/me", testUA, "", "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		},
	)

	t.Run(
		"UpdateProfileWithAvatar", func(t *testing.T) {
			body := &bytes.Buffer{}
			mw := multipart.NewWriter(body)
			require.NoError(t, mw.WriteField("name", "Renamed User"))

			fw, err := mw.CreateFormFile("avatar", "avatar.png")
			require.NoError(t, err)
			_, err = fw.Write([]byte("not-really-a-png"))
			require.NoError(t, err)
			require.NoError(t, mw.Close())

			req, err := http.NewRequest(http.MethodPut, ts.URL+"/users/me", body)
			require.NoError(t, err)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+tokens.Access)

			resp, err := ts.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			status, profile := getMe(t)
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, "Renamed User", profile.Name)
			assert.Contains(t, profile.Avatar, "/avatars/")
			assert.Contains(t, profile.Avatar, "avatar.png")
		},
	)

	t.Run(
		"DeleteAccount", func(t *testing.T) {
			req, err := http.NewRequest(http.MethodDelete, ts.URL+"/users/me", nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+tokens.Access)

			resp, err := ts.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusNoContent, resp.StatusCode)
		},
	)

	t.Run(
		"ProfileGoneAfterDelete", func(t *testing.T) {
			status, _ := getMe(t)
			assert.Equal(t, http.StatusNotFound, status)
		},
	)

	t.Run(
		"RefreshRevokedAfterDelete", func(t *testing.T) {
			resp, _ := doJSON(t, ts, http.MethodPost, "/auth/refresh", testUA, "", tokens.DeviceID, map[string]string{
				"refresh": tokens.Refresh,
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		},
	)
}
