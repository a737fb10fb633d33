package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/unchain3d/cursova-backend/internal/models"
)

var errInvalidIdentity = errors.New("invalid identity in token")

// requestIdentity rebuilds the caller identity the auth middleware stored in
// Locals. Core services receive it explicitly and never read ambient state.
func requestIdentity(c *fiber.Ctx) (models.Identity, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return models.Identity{}, errInvalidIdentity
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return models.Identity{}, errInvalidIdentity
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Identity{}, errInvalidIdentity
	}
	return models.Identity{ID: userID, Role: role}, nil
}
