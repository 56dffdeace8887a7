package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"julie/internal/colour"
	"julie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoutesRequireAuth(t *testing.T) {
	_, app := newTestServer(t, defaultUpstreams())

	for _, target := range []string{"/profile", "/wardrobe_items", "/wardrobe/1"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	_, token := createTestUser(t, s, "profile@example.com")

	resp, err := app.Test(authed(jsonRequest(http.MethodPost, "/profile", map[string]string{
		"height": "170",
		"chest":  "90",
		"weight": "60",
		"waist":  "70",
		"gender": "female",
		"age":    "30",
	}), token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(authed(httptest.NewRequest(http.MethodGet, "/profile", nil), token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile := decodeBody(t, resp)["profile"].(map[string]any)
	assert.Equal(t, "170", profile["height"])
	assert.Equal(t, "female", profile["gender"])
}

func TestSaveProfileAcceptsPhotoURL(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	user, token := createTestUser(t, s, "photoref@example.com")

	resp, err := app.Test(authed(jsonRequest(http.MethodPost, "/profile", map[string]string{
		"height":   "170",
		"photoURL": "/uploads/face.jpg",
	}), token), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	profile := decodeBody(t, resp)["profile"].(map[string]any)
	assert.Equal(t, "face.jpg", profile["user_photo"])

	var stored models.Profile
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "face.jpg", stored.UserPhoto)
}

func TestGetProfileRejectsForeignUserIDParam(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	user, token := createTestUser(t, s, "owner@example.com")

	req := authed(httptest.NewRequest(http.MethodGet, "/profile?userId=999", nil), token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The matching userId is tolerated for older clients.
	require.NoError(t, s.db.Create(&models.Profile{UserID: user.ID, Height: "160"}).Error)
	req = authed(httptest.NewRequest(http.MethodGet, "/profile?userId="+itoa(user.ID), nil), token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetProfileNotFound(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	_, token := createTestUser(t, s, "noprofile@example.com")

	resp, err := app.Test(authed(httptest.NewRequest(http.MethodGet, "/profile", nil), token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadProfilePhoto(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	user, token := createTestUser(t, s, "photo@example.com")

	req := authed(multipartRequest(t, "/profile/photo", "photo", "me.jpg", []byte("selfie bytes"), nil), token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["userPhoto"], "/uploads/photo-")

	var stored models.Profile
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.NotEmpty(t, stored.UserPhoto)
	assert.True(t, s.uploads.Exists(stored.UserPhoto))
}

func TestUploadProfilePhotoMissingFile(t *testing.T) {
	s, app := newTestServer(t, defaultUpstreams())
	_, token := createTestUser(t, s, "nofile@example.com")

	resp, err := app.Test(authed(jsonRequest(http.MethodPost, "/profile/photo", nil), token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyseColoursEndpointFallsBackWhenServiceDown(t *testing.T) {
	up := defaultUpstreams()
	up.analyzer = &analyzerStub{err: errors.New("connection refused")}
	s, app := newTestServer(t, up)
	user, token := createTestUser(t, s, "colours@example.com")

	req := authed(multipartRequest(t, "/profile/photo", "photo", "me.jpg", []byte("selfie"), nil), token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(authed(jsonRequest(http.MethodPost, "/profile/colour", nil), token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a down colour service still answers with a palette")

	body := decodeBody(t, resp)
	assert.Equal(t, "Spring", body["season"])
	assert.Equal(t, "Warm", body["undertone"])
	assert.Len(t, body["palette"], 6)
	assert.Equal(t, models.AnalysisStatusFallback, body["status"])

	var stored models.Profile
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, models.AnalysisStatusFallback, stored.AnalysisStatus)
}

func TestAnalyseColoursEndpointGenuineVerdict(t *testing.T) {
	up := defaultUpstreams()
	up.analyzer = &analyzerStub{result: &colour.Result{
		Season: "Winter", Undertone: "Cool", Palette: []string{"#000080", "#FFFFFF"},
	}}
	s, app := newTestServer(t, up)
	_, token := createTestUser(t, s, "winter@example.com")

	req := authed(multipartRequest(t, "/profile/photo", "photo", "me.jpg", []byte("selfie"), nil), token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(authed(jsonRequest(http.MethodPost, "/profile/colour", nil), token), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Winter", body["season"])
	assert.Equal(t, models.AnalysisStatusAnalyzed, body["status"])
}
