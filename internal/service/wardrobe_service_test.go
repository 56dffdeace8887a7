package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"testing"

	"julie/internal/models"
	"julie/internal/repository"
	"julie/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type removerStub struct {
	output []byte
	err    error
}

func (r *removerStub) Remove(ctx context.Context, filename string, image io.Reader) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.output, nil
}

type wardrobeFixture struct {
	db        *gorm.DB
	uploads   *storage.Store
	processed *storage.Store
	svc       *WardrobeService
	user      *models.User
}

func setupWardrobeService(t *testing.T, remover BackgroundRemover) *wardrobeFixture {
	t.Helper()
	db := setupServiceDB(t)
	uploads, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	processed, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	user := &models.User{Name: "Julie", Email: "wardrobe@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	svc := NewWardrobeService(
		repository.NewWardrobeRepository(db),
		repository.NewUserRepository(db),
		uploads,
		processed,
		remover,
	)
	return &wardrobeFixture{db: db, uploads: uploads, processed: processed, svc: svc, user: user}
}

func validPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 300, 300))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateStoresImagesAndRow(t *testing.T) {
	f := setupWardrobeService(t, &removerStub{output: validPNG(t)})

	item, err := f.svc.Create(context.Background(), CreateItemInput{
		UserID:       f.user.ID,
		Filename:     "shirt.jpg",
		Image:        strings.NewReader("raw shirt photo"),
		Brand:        "Acme",
		ClothingType: "top",
		Size:         "M",
		Color:        "blue",
		Season:       "Summer",
		Description:  "linen shirt",
	})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	assert.True(t, f.uploads.Exists(item.OriginalImagePath))
	assert.True(t, f.processed.Exists(item.ProcessedImagePath))
	assert.True(t, strings.HasSuffix(item.ProcessedImagePath, ".png"))
	assert.NotEmpty(t, item.ThumbnailPath)
	assert.True(t, f.processed.Exists(item.ThumbnailPath))

	var stored models.WardrobeItem
	require.NoError(t, f.db.First(&stored, item.ID).Error)
	assert.Equal(t, "Acme", stored.Brand)
	assert.Equal(t, f.user.ID, stored.UserID)
}

func TestCreateRemovalFailureLeavesNothingBehind(t *testing.T) {
	f := setupWardrobeService(t, &removerStub{err: errors.New("api key invalid")})

	_, err := f.svc.Create(context.Background(), CreateItemInput{
		UserID:   f.user.ID,
		Filename: "shirt.jpg",
		Image:    strings.NewReader("raw"),
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)

	var count int64
	require.NoError(t, f.db.Model(&models.WardrobeItem{}).Count(&count).Error)
	assert.Zero(t, count, "a failed removal must not insert a row")
	assert.Empty(t, dirEntries(t, f.uploads.Dir()), "the stored original must be cleaned up")
	assert.Empty(t, dirEntries(t, f.processed.Dir()))
}

func TestCreateUnknownUserFails(t *testing.T) {
	f := setupWardrobeService(t, &removerStub{output: validPNG(t)})

	_, err := f.svc.Create(context.Background(), CreateItemInput{
		UserID:   999,
		Filename: "shirt.jpg",
		Image:    strings.NewReader("raw"),
	})
	require.Error(t, err)
	assert.Empty(t, dirEntries(t, f.uploads.Dir()))
}

func TestCreateThumbnailFailureIsNotFatal(t *testing.T) {
	// Remover replies with bytes that are not a decodable image.
	f := setupWardrobeService(t, &removerStub{output: []byte("pretend png")})

	item, err := f.svc.Create(context.Background(), CreateItemInput{
		UserID:   f.user.ID,
		Filename: "shirt.jpg",
		Image:    strings.NewReader("raw"),
	})
	require.NoError(t, err)
	assert.Empty(t, item.ThumbnailPath)
	assert.Equal(t, item.ProcessedImagePath, item.DisplayImagePath())
}

func TestListRequiresUserID(t *testing.T) {
	f := setupWardrobeService(t, &removerStub{})
	_, err := f.svc.List(context.Background(), 0, "")
	assert.Error(t, err)
}
