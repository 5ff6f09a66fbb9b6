package handler

import (
	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the authenticated user id placed in Locals by the auth
// middleware. The bool is false when the route was reached without it.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// weddingParam parses the :weddingId route parameter.
func weddingParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("weddingId")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid wedding ID")
	}
	return uint(id), nil
}
