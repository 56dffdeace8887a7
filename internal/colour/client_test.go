package colour

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSendsProfileAndPhoto(t *testing.T) {
	var gotPath, gotProfile string
	var gotPhoto []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotProfile = r.MultipartForm.Value["profile"][0]

		file, _, err := r.FormFile("photo")
		require.NoError(t, err)
		gotPhoto, err = io.ReadAll(file)
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(Result{
			Season:    "Autumn",
			Undertone: "Cool",
			Palette:   []string{"#112233", "#445566"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	profile := map[string]string{"height": "170", "gender": "female"}
	res, err := client.Analyze(context.Background(), profile, "me.jpg", strings.NewReader("photo bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/analyze", gotPath)
	assert.JSONEq(t, `{"height":"170","gender":"female"}`, gotProfile)
	assert.Equal(t, "photo bytes", string(gotPhoto))
	assert.Equal(t, "Autumn", res.Season)
	assert.Equal(t, "Cool", res.Undertone)
	assert.Equal(t, []string{"#112233", "#445566"}, res.Palette)
}

func TestAnalyzeNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Analyze(context.Background(), map[string]string{}, "me.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestAnalyzeBadJSONIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Analyze(context.Background(), map[string]string{}, "me.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
