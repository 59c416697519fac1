package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/punchclock/internal/crypto"
	"github.com/avasiliev/punchclock/internal/models"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/internal/server/storage"
	"github.com/avasiliev/punchclock/pkg/api"
)

// setupTestLogger creates a quiet logger for tests
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func setupTokens(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

// mockUserStorage is a mock implementation of storage.UserStorage
type mockUserStorage struct {
	users        map[string]*models.User // email -> User
	createError  error
	getUserError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	userStorage := newMockUserStorage()
	tokens := setupTokens(t)
	handler := NewAuthHandler(setupTestLogger(), userStorage, tokens)

	w := postJSON(t, handler.Signup, "/auth/signup", api.SignupRequest{
		Email:    "a@b.com",
		Password: "p1",
		Username: "A",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.AuthToken)

	// The token must verify and carry the public claims only
	claims, err := tokens.Verify(resp.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "A", claims.Username)
	assert.NotEmpty(t, claims.UserID)

	// The stored record holds a digest, not the plaintext
	user, err := userStorage.GetUserByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", user.PasswordHash)
	assert.True(t, crypto.CheckPassword("p1", user.PasswordHash))
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  api.SignupRequest
	}{
		{name: "no email", req: api.SignupRequest{Password: "p1", Username: "A"}},
		{name: "no password", req: api.SignupRequest{Email: "a@b.com", Username: "A"}},
		{name: "no username", req: api.SignupRequest{Email: "a@b.com", Password: "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), setupTokens(t))

			w := postJSON(t, handler.Signup, "/auth/signup", tt.req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "provide email, password and username")
		})
	}
}

func TestAuthHandler_Signup_InvalidEmail(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), setupTokens(t))

	w := postJSON(t, handler.Signup, "/auth/signup", api.SignupRequest{
		Email:    "not-an-email",
		Password: "p1",
		Username: "A",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), setupTokens(t))

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.Signup(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_ExistingUser(t *testing.T) {
	userStorage := newMockUserStorage()
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	signup := api.SignupRequest{Email: "a@b.com", Password: "p1", Username: "A"}

	w := postJSON(t, handler.Signup, "/auth/signup", signup)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, handler.Signup, "/auth/signup", signup)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")
}

func TestAuthHandler_Signup_InsertRace(t *testing.T) {
	// The pre-check passes but the store reports a duplicate key: two
	// concurrent signups raced and this one lost
	userStorage := newMockUserStorage()
	userStorage.createError = storage.ErrUserAlreadyExists
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	w := postJSON(t, handler.Signup, "/auth/signup", api.SignupRequest{
		Email:    "a@b.com",
		Password: "p1",
		Username: "A",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_StoreValidation(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.createError = storage.ErrValidation
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	w := postJSON(t, handler.Signup, "/auth/signup", api.SignupRequest{
		Email:    "a@b.com",
		Password: "p1",
		Username: "A",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Signup_StoreFailure(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.createError = errors.New("disk on fire")
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	w := postJSON(t, handler.Signup, "/auth/signup", api.SignupRequest{
		Email:    "a@b.com",
		Password: "p1",
		Username: "A",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The store's error message never reaches the client
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func registerTestUser(t *testing.T, userStorage *mockUserStorage, email, password string) *models.User {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           "user123",
		Email:        email,
		Username:     "A",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, userStorage.CreateUser(context.Background(), user))
	return user
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userStorage := newMockUserStorage()
	tokens := setupTokens(t)
	registerTestUser(t, userStorage, "a@b.com", "p1")
	handler := NewAuthHandler(setupTestLogger(), userStorage, tokens)

	w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
		Email:    "a@b.com",
		Password: "p1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	claims, err := tokens.Verify(resp.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), setupTokens(t))

	w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{Email: "a@b.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	userStorage := newMockUserStorage()
	registerTestUser(t, userStorage, "a@b.com", "p1")
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	unknown := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
		Email:    "nobody@b.com",
		Password: "p1",
	})
	wrongPassword := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
		Email:    "a@b.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	// Both failure causes must be indistinguishable to the client, so
	// login cannot be used to probe which emails are registered
	assert.JSONEq(t, unknown.Body.String(), wrongPassword.Body.String())
	assert.JSONEq(t, `{"message":"Incorrect Email or Password"}`, unknown.Body.String())
}

func TestAuthHandler_Login_StoreFailure(t *testing.T) {
	userStorage := newMockUserStorage()
	userStorage.getUserError = errors.New("connection lost")
	handler := NewAuthHandler(setupTestLogger(), userStorage, setupTokens(t))

	w := postJSON(t, handler.Login, "/auth/login", api.LoginRequest{
		Email:    "a@b.com",
		Password: "p1",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Verify(t *testing.T) {
	tokens := setupTokens(t)
	handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), tokens)

	claims := &jwt.Claims{UserID: "user123", Email: "a@b.com", Username: "A"}

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	req = req.WithContext(WithClaims(req.Context(), claims))

	w := httptest.NewRecorder()
	handler.Verify(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.VerifyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "user123", resp.UserID)
	assert.Equal(t, "a@b.com", resp.Email)
	assert.Equal(t, "A", resp.Username)
}

func TestAuthHandler_Verify_NoClaims(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), newMockUserStorage(), setupTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	w := httptest.NewRecorder()
	handler.Verify(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
