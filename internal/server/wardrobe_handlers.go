package server

import (
	"julie/internal/models"
	"julie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateWardrobeItem handles POST /wardrobe (multipart field "image").
func (s *Server) CreateWardrobeItem(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Clothing image is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	item, err := s.wardrobeService.Create(c.Context(), service.CreateItemInput{
		UserID:       userID,
		Filename:     fileHeader.Filename,
		Image:        file,
		Brand:        c.FormValue("brand"),
		ClothingType: c.FormValue("clothingType"),
		Size:         c.FormValue("size"),
		Color:        c.FormValue("color"),
		Season:       c.FormValue("season"),
		Description:  c.FormValue("description"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to wardrobe",
		"item":    item,
	})
}

// GetWardrobeItems handles GET /wardrobe_items and GET /wardrobe/:userId.
// The optional ?order= parameter accepts "item_id" (default) or "created_at".
func (s *Server) GetWardrobeItems(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	items, err := s.wardrobeService.List(c.Context(), userID, c.Query("order"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}
