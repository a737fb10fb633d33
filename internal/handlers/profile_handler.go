package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type profileUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type visitReader interface {
	ListByUser(ctx context.Context, userID int64) ([]models.VisitHistory, error)
}

type ProfileHandler struct {
	userRepo  profileUserReader
	visitRepo visitReader
}

func NewProfileHandler(userRepo profileUserReader, visitRepo visitReader) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, visitRepo: visitRepo}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	actor, err := requestIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if actor.Role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	user, err := h.userRepo.GetByID(c.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	visits, err := h.visitRepo.ListByUser(c.Context(), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch visit history"})
	}

	return c.JSON(fiber.Map{
		"username":                user.Username,
		"email":                   user.Email,
		"subscription_type":       user.SubscriptionType,
		"subscription_expires_at": user.ExpiresAt,
		"subscription_active":     user.Active,
		"visit_history":           visits,
	})
}
