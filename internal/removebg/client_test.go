package removebg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveSendsExpectedRequest(t *testing.T) {
	var gotPath, gotKey string
	var gotFields map[string]string
	var gotImage []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		file, _, err := r.FormFile("image_file")
		require.NoError(t, err)
		gotImage, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	out, err := client.Remove(context.Background(), "shirt.jpg", strings.NewReader("raw image"))
	require.NoError(t, err)

	assert.Equal(t, "/v1.0/removebg", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "auto", gotFields["size"])
	assert.Equal(t, "auto", gotFields["type"])
	assert.Equal(t, "png", gotFields["format"])
	assert.Equal(t, "raw image", string(gotImage))
	assert.Equal(t, "PNGDATA", string(out))
}

func TestRemoveNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"errors":[{"title":"insufficient credits"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	_, err := client.Remove(context.Background(), "shirt.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestRemoveTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", 500*time.Millisecond)
	_, err := client.Remove(context.Background(), "shirt.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
