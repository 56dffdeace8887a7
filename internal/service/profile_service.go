// Package service provides application business logic (profiles, wardrobe, stylist chat).
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"julie/internal/colour"
	"julie/internal/middleware"
	"julie/internal/models"
	"julie/internal/observability"
	"julie/internal/repository"
	"julie/internal/storage"
)

// ColourAnalyzer is the contract the colour-analysis client satisfies.
type ColourAnalyzer interface {
	Analyze(ctx context.Context, profile any, photoName string, photo io.Reader) (*colour.Result, error)
}

// fallbackAnalysis is substituted whenever analysis cannot produce a
// genuine verdict, so the user always ends up with a usable palette.
var fallbackAnalysis = models.ColourAnalysis{
	Season:    "Spring",
	Undertone: "Warm",
	Palette:   []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F"},
}

// FallbackAnalysis returns a copy of the default verdict.
func FallbackAnalysis() models.ColourAnalysis {
	out := fallbackAnalysis
	out.Palette = append([]string(nil), fallbackAnalysis.Palette...)
	out.Status = models.AnalysisStatusFallback
	return out
}

// ProfileService provides body/style profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	uploads     *storage.Store
	analyzer    ColourAnalyzer
}

// NewProfileService returns a new ProfileService.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	uploads *storage.Store,
	analyzer ColourAnalyzer,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		uploads:     uploads,
		analyzer:    analyzer,
	}
}

// UpsertInput is the input for saving a user's measurements and style fields.
// PhotoURL optionally replaces the stored photo reference.
type UpsertInput struct {
	UserID   uint
	Height   string
	Chest    string
	Weight   string
	Waist    string
	Gender   string
	Age      string
	PhotoURL string
}

// Upsert saves the user's profile fields, creating the row on first write.
// Photo and analysis results already on the profile are carried forward.
// When the input carries a photo reference, the colour analysis re-runs in
// the background against it.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertInput) (*models.Profile, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("User ID is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID: in.UserID,
		Height: in.Height,
		Chest:  in.Chest,
		Weight: in.Weight,
		Waist:  in.Waist,
		Gender: in.Gender,
		Age:    in.Age,
	}

	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		profile.UserPhoto = existing.UserPhoto
		profile.Season = existing.Season
		profile.Undertone = existing.Undertone
		profile.Palette = existing.Palette
		profile.AnalysisStatus = existing.AnalysisStatus
	case isNotFound(err):
		// First write for this user.
	default:
		return nil, err
	}

	photo := strings.TrimPrefix(strings.TrimSpace(in.PhotoURL), "/uploads/")
	if photo != "" {
		profile.UserPhoto = photo
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	if photo != "" {
		s.analyzeAsync(in.UserID)
	}
	return profile, nil
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// SetPhoto records the stored photo filename on the profile, creating a
// bare profile if the user saved a photo before their measurements. The
// colour analysis then runs in the background.
func (s *ProfileService) SetPhoto(ctx context.Context, userID uint, filename string) (*models.Profile, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
	case isNotFound(err):
		profile = &models.Profile{UserID: userID}
	default:
		return nil, err
	}
	profile.UserPhoto = filename

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.analyzeAsync(userID)
	return profile, nil
}

// analyzeAsync runs the colour pipeline detached from the request.
// Failures are logged, never surfaced; the fallback path inside
// AnalyzeColours already keeps the profile usable.
func (s *ProfileService) analyzeAsync(userID uint) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.AnalyzeColours(ctx, userID); err != nil {
			middleware.Logger.Warn("background colour analysis failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// analysisProfile is the shape forwarded to the colour service.
type analysisProfile struct {
	Height string `json:"height"`
	Chest  string `json:"chest"`
	Weight string `json:"weight"`
	Waist  string `json:"waist"`
	Gender string `json:"gender"`
	Age    string `json:"age"`
}

// AnalyzeColours runs the seasonal colour analysis for the user's profile
// photo. An unusable verdict or an upstream failure persists the fallback
// palette instead of erroring; only a missing photo file or a failed
// database write surfaces an error, and neither mutates the profile.
func (s *ProfileService) AnalyzeColours(ctx context.Context, userID uint) (*models.ColourAnalysis, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.UserPhoto == "" {
		return nil, models.NewValidationError("Profile photo is required for colour analysis")
	}

	photo, err := s.uploads.Open(profile.UserPhoto)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer photo.Close()

	verdict := FallbackAnalysis()
	result, err := s.analyzer.Analyze(ctx, analysisProfile{
		Height: profile.Height,
		Chest:  profile.Chest,
		Weight: profile.Weight,
		Waist:  profile.Waist,
		Gender: profile.Gender,
		Age:    profile.Age,
	}, profile.UserPhoto, photo)

	switch {
	case err != nil:
		observability.AnalysisFallbacks.WithLabelValues("upstream_failure").Inc()
		middleware.Logger.Warn("colour service unavailable, applying fallback palette",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	case unusableVerdict(result):
		observability.AnalysisFallbacks.WithLabelValues("unknown_result").Inc()
		middleware.Logger.Info("colour service returned no usable verdict, applying fallback palette",
			slog.Uint64("user_id", uint64(userID)),
		)
	default:
		verdict = models.ColourAnalysis{
			Season:    result.Season,
			Undertone: result.Undertone,
			Palette:   result.Palette,
			Status:    models.AnalysisStatusAnalyzed,
		}
	}

	profile.Season = verdict.Season
	profile.Undertone = verdict.Undertone
	profile.Palette = models.Palette(verdict.Palette)
	profile.AnalysisStatus = verdict.Status

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// unusableVerdict reports whether the service reply cannot be trusted:
// an empty or "unknown" season, an "unknown" undertone, or an empty palette.
func unusableVerdict(r *colour.Result) bool {
	if r == nil {
		return true
	}
	season := strings.TrimSpace(r.Season)
	if season == "" || strings.EqualFold(season, "unknown") {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(r.Undertone), "unknown") {
		return true
	}
	return len(r.Palette) == 0
}

// isNotFound reports whether err is the repository's missing-row error.
func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "NOT_FOUND"
}
