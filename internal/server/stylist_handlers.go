package server

import (
	"julie/internal/models"
	"julie/internal/stylist"

	"github.com/gofiber/fiber/v2"
)

// Chat handles POST /chat, proxying one turn to the stylist assistant.
func (s *Server) Chat(c *fiber.Ctx) error {
	userID, err := resolveUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Message     string            `json:"message"`
		ChatHistory []stylist.Message `json:"chatHistory"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.stylistService.Chat(c.Context(), userID, req.Message, req.ChatHistory)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"response": reply})
}
