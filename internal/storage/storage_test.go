package storage

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("photo", "me.JPG", strings.NewReader("image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "photo-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension should be lowercased: %s", name)
	assert.True(t, s.Exists(name))

	f, err := s.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Save("image", "shirt.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save("image", "shirt.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, s.Exists(first))
	assert.True(t, s.Exists(second))
}

func TestSaveDefaultsMissingExtension(t *testing.T) {
	s := newTestStore(t)
	name, err := s.Save("photo", "noext", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
}

func TestPathRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	path, err := s.Path("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "passwd"), path, "traversal components must be stripped")

	_, err = s.Path("..")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	name, err := s.SaveBytes("processed", ".png", []byte("png"))
	require.NoError(t, err)
	require.True(t, s.Exists(name))

	require.NoError(t, s.Remove(name))
	assert.False(t, s.Exists(name))

	// Removing a missing file is not an error.
	assert.NoError(t, s.Remove(name))
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailScalesDown(t *testing.T) {
	data := testPNG(t, 1024, 512)

	thumb, err := Thumbnail(data)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	data := testPNG(t, 100, 80)

	thumb, err := Thumbnail(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := Thumbnail([]byte("not an image"))
	assert.Error(t, err)
}
