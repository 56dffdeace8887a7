package service

import (
	"context"
	"io"
	"log/slog"

	"julie/internal/middleware"
	"julie/internal/models"
	"julie/internal/repository"
	"julie/internal/storage"
)

// BackgroundRemover is the contract the remove.bg client satisfies.
type BackgroundRemover interface {
	Remove(ctx context.Context, filename string, image io.Reader) ([]byte, error)
}

// WardrobeService provides clothing-item business logic.
type WardrobeService struct {
	repo      repository.WardrobeRepository
	userRepo  repository.UserRepository
	uploads   *storage.Store
	processed *storage.Store
	remover   BackgroundRemover
}

// NewWardrobeService returns a new WardrobeService.
func NewWardrobeService(
	repo repository.WardrobeRepository,
	userRepo repository.UserRepository,
	uploads *storage.Store,
	processed *storage.Store,
	remover BackgroundRemover,
) *WardrobeService {
	return &WardrobeService{
		repo:      repo,
		userRepo:  userRepo,
		uploads:   uploads,
		processed: processed,
		remover:   remover,
	}
}

// CreateItemInput is the input for adding a clothing item.
type CreateItemInput struct {
	UserID       uint
	Filename     string
	Image        io.Reader
	Brand        string
	ClothingType string
	Size         string
	Color        string
	Season       string
	Description  string
}

// Create stores the uploaded photo, strips its background, renders a
// thumbnail and inserts the item row. A failed background removal leaves
// no row and no stored original behind.
func (s *WardrobeService) Create(ctx context.Context, in CreateItemInput) (*models.WardrobeItem, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("User ID is required")
	}
	if in.Image == nil {
		return nil, models.NewValidationError("Clothing image is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	originalName, err := s.uploads.Save("image", in.Filename, in.Image)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	original, err := s.uploads.Open(originalName)
	if err != nil {
		s.discard(s.uploads, originalName)
		return nil, models.NewInternalError(err)
	}
	pngBytes, err := s.remover.Remove(ctx, originalName, original)
	original.Close()
	if err != nil {
		s.discard(s.uploads, originalName)
		return nil, models.NewUpstreamError("background removal", err)
	}

	processedName, err := s.processed.SaveBytes("processed", ".png", pngBytes)
	if err != nil {
		s.discard(s.uploads, originalName)
		return nil, models.NewInternalError(err)
	}

	// Thumbnail is best-effort; clients fall back to the processed image.
	thumbName := ""
	if thumb, terr := storage.Thumbnail(pngBytes); terr == nil {
		if name, serr := s.processed.SaveBytes("thumb", ".jpg", thumb); serr == nil {
			thumbName = name
		}
	} else {
		middleware.Logger.Warn("thumbnail generation failed",
			slog.String("file", processedName),
			slog.String("error", terr.Error()),
		)
	}

	item := &models.WardrobeItem{
		UserID:             in.UserID,
		OriginalImagePath:  originalName,
		ProcessedImagePath: processedName,
		ThumbnailPath:      thumbName,
		Brand:              in.Brand,
		ClothingType:       in.ClothingType,
		Size:               in.Size,
		Color:              in.Color,
		Season:             in.Season,
		Description:        in.Description,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.discard(s.uploads, originalName)
		s.discard(s.processed, processedName)
		if thumbName != "" {
			s.discard(s.processed, thumbName)
		}
		return nil, err
	}
	return item, nil
}

// List returns the user's items in the requested order.
func (s *WardrobeService) List(ctx context.Context, userID uint, order string) ([]models.WardrobeItem, error) {
	if userID == 0 {
		return nil, models.NewValidationError("User ID is required")
	}
	return s.repo.ListByUser(ctx, userID, order)
}

func (s *WardrobeService) discard(store *storage.Store, name string) {
	if err := store.Remove(name); err != nil {
		middleware.Logger.Warn("failed to remove stored file",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
	}
}
