package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// actorFromContext pulls the authenticated user id and role out of the
// request context the auth middleware populated. Role-based authorization is
// enforced in the services; handlers only need a valid identity.
func actorFromContext(c *fiber.Ctx) (int64, string, bool) {
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		return 0, "", false
	}

	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, "", false
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, "", false
	}

	return userID, role, true
}
