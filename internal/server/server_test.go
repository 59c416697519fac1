package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/punchclock/internal/server/config"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/internal/server/storage/sqlite"
	"github.com/avasiliev/punchclock/pkg/api"
)

// setupTestServer wires a real router against an on-disk SQLite database
// in a temp dir.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := jwt.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := &config.Config{Address: ":0"}

	srv := New(logger, cfg, store, tokens)
	ts := httptest.NewServer(srv.http.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, buf.Bytes()
}

func signupToken(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	resp, body := doJSON(t, ts, http.MethodPost, "/auth/signup", "", api.SignupRequest{
		Email:    email,
		Password: "p1",
		Username: "A",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var auth api.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth.AuthToken
}

func TestSignup_ThenDuplicate(t *testing.T) {
	ts := setupTestServer(t)

	token := signupToken(t, ts, "a@b.com")
	assert.NotEmpty(t, token)

	resp, body := doJSON(t, ts, http.MethodPost, "/auth/signup", "", api.SignupRequest{
		Email:    "a@b.com",
		Password: "p2",
		Username: "B",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "user already exists")
}

func TestLogin_Scenarios(t *testing.T) {
	ts := setupTestServer(t)
	signupToken(t, ts, "a@b.com")

	t.Run("correct credentials", func(t *testing.T) {
		resp, body := doJSON(t, ts, http.MethodPost, "/auth/login", "", api.LoginRequest{
			Email: "a@b.com", Password: "p1",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var auth api.AuthResponse
		require.NoError(t, json.Unmarshal(body, &auth))
		assert.NotEmpty(t, auth.AuthToken)
	})

	t.Run("unregistered email and wrong password match", func(t *testing.T) {
		resp1, body1 := doJSON(t, ts, http.MethodPost, "/auth/login", "", api.LoginRequest{
			Email: "nobody@b.com", Password: "p1",
		})
		resp2, body2 := doJSON(t, ts, http.MethodPost, "/auth/login", "", api.LoginRequest{
			Email: "a@b.com", Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, resp1.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
		assert.JSONEq(t, string(body1), string(body2))
	})
}

func TestVerify_Endpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := signupToken(t, ts, "a@b.com")

	t.Run("valid token", func(t *testing.T) {
		resp, body := doJSON(t, ts, http.MethodGet, "/auth/verify", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var claims api.VerifyResponse
		require.NoError(t, json.Unmarshal(body, &claims))
		assert.Equal(t, "a@b.com", claims.Email)
		assert.Equal(t, "A", claims.Username)
	})

	t.Run("no token", func(t *testing.T) {
		resp, _ := doJSON(t, ts, http.MethodGet, "/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token", func(t *testing.T) {
		resp, _ := doJSON(t, ts, http.MethodGet, "/auth/verify", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestPunchclock_Flow(t *testing.T) {
	ts := setupTestServer(t)
	token := signupToken(t, ts, "worker@b.com")

	resp, _ := doJSON(t, ts, http.MethodPost, "/punchclock/in", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/punchclock/in", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/punchclock/out", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodGet, "/punchclock", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list api.PunchListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Entries, 1)
	assert.NotNil(t, list.Entries[0].ClockOut)

	// Protected resource without a token
	resp, _ = doJSON(t, ts, http.MethodGet, "/punchclock", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsersMe(t *testing.T) {
	ts := setupTestServer(t)
	token := signupToken(t, ts, "a@b.com")

	resp, body := doJSON(t, ts, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user api.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotContains(t, string(body), "password")
}
