package server

import (
	"net/http"
	"testing"

	"julie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupSuccess(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", map[string]string{
		"name":     "Julie",
		"email":    "julie@example.com",
		"password": "sensible8",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "julie@example.com", user["email"])
	assert.NotContains(t, user, "password", "password hash must never leave the API")
}

func TestSignupAuthAliasRoute(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/signup", map[string]string{
		"name":     "Julie",
		"email":    "alias@example.com",
		"password": "sensible8",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"email": "x@example.com"}},
		{"bad email", map[string]string{"name": "J", "email": "not-an-email", "password": "sensible8"}},
		{"weak password", map[string]string{"name": "J", "email": "j@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	body := map[string]string{"name": "Julie", "email": "dup@example.com", "password": "sensible8"}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/signup", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginSuccess(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())

	hashed, err := bcrypt.GenerateFromPassword([]byte("sensible8"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		Name: "Julie", Email: "login@example.com", Password: string(hashed),
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "login@example.com",
		"password": "sensible8",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())

	hashed, err := bcrypt.GenerateFromPassword([]byte("sensible8"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		Name: "Julie", Email: "wrong@example.com", Password: string(hashed),
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "wrong@example.com",
		"password": "incorrect9",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupTokenWorksOnProtectedRoute(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/signup", map[string]string{
		"name":     "Julie",
		"email":    "roundtrip@example.com",
		"password": "sensible8",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	resp, err = app.Test(authed(jsonRequest(http.MethodPost, "/profile", map[string]string{
		"height": "170",
	}), token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
