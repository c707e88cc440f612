package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID reads the authenticated caller's id set by the auth middleware.
// Handlers pass it explicitly into every service call; ownership is never
// read from ambient state.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
