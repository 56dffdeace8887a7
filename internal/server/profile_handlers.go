package server

import (
	"julie/internal/models"
	"julie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SaveProfile handles POST /profile. A photoURL in the body replaces the
// stored photo reference and re-runs the colour analysis in the background.
func (s *Server) SaveProfile(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Height   string `json:"height"`
		Chest    string `json:"chest"`
		Weight   string `json:"weight"`
		Waist    string `json:"waist"`
		Gender   string `json:"gender"`
		Age      string `json:"age"`
		PhotoURL string `json:"photoURL"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.Context(), service.UpsertInput{
		UserID:   userID,
		Height:   req.Height,
		Chest:    req.Chest,
		Weight:   req.Weight,
		Waist:    req.Waist,
		Gender:   req.Gender,
		Age:      req.Age,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Profile saved",
		"profile": profile,
	})
}

// GetProfile handles GET /profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.profileService.Get(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// UploadProfilePhoto handles POST /profile/photo (multipart field "photo").
// The colour analysis kicks off in the background after the upload lands.
func (s *Server) UploadProfilePhoto(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Photo file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	stored, err := s.uploads.Save("photo", fileHeader.Filename, file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile, err := s.profileService.SetPhoto(c.Context(), userID, stored)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Photo uploaded",
		"userPhoto": "/uploads/" + stored,
		"profile":   profile,
	})
}

// AnalyseColours handles POST /profile/colour. It runs synchronously and
// always answers with a palette; the response says whether it is genuine.
func (s *Server) AnalyseColours(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	analysis, err := s.profileService.AnalyzeColours(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(analysis)
}
