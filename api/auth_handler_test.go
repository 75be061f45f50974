package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Token string `json:"token"`
		User  struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		} `json:"user"`
	} `json:"data"`
}

func registerUser(t *testing.T, router http.Handler, email, password string) authResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	decodeBody(t, rec, &resp)
	return resp
}

func TestRegister(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := registerUser(t, router, "Admin@Example.com", "hunter22")
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.NotEqual(t, uuid.Nil, resp.Data.User.ID)
	// Emails are lowercased before storage.
	assert.Equal(t, "admin@example.com", resp.Data.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "admin@example.com", "hunter22")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "admin@example.com",
		"password": "different",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Success)
}

func TestRegisterMissingCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "admin@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router, _ := newTestRouter(t)
	registered := registerUser(t, router, "admin@example.com", "hunter22")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, registered.Data.User.ID, resp.Data.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "admin@example.com", "hunter22")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "Wrong password", email: "admin@example.com", password: "wrong"},
		{name: "Unknown email", email: "nobody@example.com", password: "hunter22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, "")
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			assert.False(t, resp.Success)
		})
	}
}

func TestVerify(t *testing.T) {
	router, _ := newTestRouter(t)
	registered := registerUser(t, router, "admin@example.com", "hunter22")

	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, "Bearer "+registered.Data.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		} `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, registered.Data.User.ID, resp.Data.ID)
	assert.Equal(t, "admin@example.com", resp.Data.Email)
}

func TestVerifyRejectsDeletedUser(t *testing.T) {
	router, _ := newTestRouter(t)

	// Token is validly signed but its subject was never registered.
	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, bearerToken(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
