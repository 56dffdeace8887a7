package server

import (
	"errors"
	"strconv"

	"julie/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// resolveUserID returns the authenticated user's ID. Older clients still
// send a userId query or path parameter; it is accepted only when it
// matches the token's subject, never trusted on its own.
func resolveUserID(c *fiber.Ctx) (uint, error) {
	authID := currentUserID(c)
	if authID == 0 {
		return 0, models.NewUnauthorizedError("Authorization required")
	}

	claimed := c.Query("userId")
	if claimed == "" {
		claimed = c.Params("userId")
	}
	if claimed != "" {
		id, err := strconv.ParseUint(claimed, 10, 32)
		if err != nil {
			return 0, models.NewValidationError("Invalid user ID")
		}
		if uint(id) != authID {
			return 0, models.NewUnauthorizedError("Cannot act on behalf of another user")
		}
	}
	return authID, nil
}

// respondServiceError maps the application error taxonomy onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	case "CONFLICT":
		status = fiber.StatusConflict
	case "UPSTREAM_ERROR", "INTERNAL_ERROR":
		status = fiber.StatusInternalServerError
	}
	return models.RespondWithError(c, status, appErr)
}
