package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/services"
)

type planCatalog interface {
	List(ctx context.Context) ([]models.SubscriptionPlan, error)
}

type subscriptionLedger interface {
	PurchaseSubscription(ctx context.Context, actor models.Identity, planID int64) (*services.PurchaseResult, error)
}

type SubscriptionHandler struct {
	planRepo planCatalog
	service  subscriptionLedger
}

func NewSubscriptionHandler(planRepo planCatalog, service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{planRepo: planRepo, service: service}
}

type purchaseRequest struct {
	PlanID int64 `json:"plan_id"`
}

func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	plans, err := h.planRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list subscription plans"})
	}
	return c.JSON(fiber.Map{"subscriptions": plans})
}

func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	actor, err := requestIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PlanID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "plan_id is required"})
	}

	result, err := h.service.PurchaseSubscription(c.Context(), actor, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		case errors.Is(err, services.ErrPlanNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription plan not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to purchase subscription"})
		}
	}

	return c.JSON(fiber.Map{
		"message":           "Subscription purchased",
		"subscription_type": result.SubscriptionType,
		"expires_at":        result.ExpiresAt,
	})
}
