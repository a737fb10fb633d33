package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/services"
)

type trainerCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
	List(ctx context.Context) ([]models.Trainer, error)
}

type availabilityService interface {
	ListAvailability(ctx context.Context, trainerID int64, date string) ([]models.TimeSlot, error)
}

type TrainerHandler struct {
	trainerRepo  trainerCatalog
	availability availabilityService
}

func NewTrainerHandler(trainerRepo trainerCatalog, availability *services.AvailabilityService) *TrainerHandler {
	return &TrainerHandler{trainerRepo: trainerRepo, availability: availability}
}

func (h *TrainerHandler) ListTrainers(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	trainers, err := h.trainerRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list trainers"})
	}
	return c.JSON(fiber.Map{"trainers": trainers})
}

func (h *TrainerHandler) GetTrainer(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	trainerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || trainerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer id"})
	}

	trainer, err := h.trainerRepo.GetByID(c.Context(), trainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch trainer"})
	}
	return c.JSON(fiber.Map{"trainer": trainer})
}

func (h *TrainerHandler) GetAvailability(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	trainerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || trainerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer id"})
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query parameter is required"})
	}

	slots, err := h.availability.ListAvailability(c.Context(), trainerID, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTrainerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrPastDate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to load availability"})
		}
	}

	return c.JSON(fiber.Map{"date": date, "slots": slots})
}
