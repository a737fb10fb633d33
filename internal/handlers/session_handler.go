package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/services"
)

type bookingApplicationService interface {
	BookSession(ctx context.Context, actor models.Identity, input services.BookSessionInput) (*models.SessionDetail, error)
	CompleteSession(ctx context.Context, actor models.Identity, sessionID int64) (*services.CompleteSessionResult, error)
	ListSessions(ctx context.Context, actor models.Identity) ([]models.SessionDetail, error)
}

type SessionHandler struct {
	service bookingApplicationService
}

func NewSessionHandler(service *services.BookingService) *SessionHandler {
	return &SessionHandler{service: service}
}

type bookSessionRequest struct {
	TrainerID   int64  `json:"trainer_id"`
	SessionTime string `json:"session_time"`
}

func (h *SessionHandler) BookSession(c *fiber.Ctx) error {
	actor, err := requestIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req bookSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sessionTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.SessionTime))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "session_time must be a valid RFC3339 timestamp"})
	}

	detail, err := h.service.BookSession(c.Context(), actor, services.BookSessionInput{
		TrainerID:   req.TrainerID,
		SessionTime: sessionTime,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": detail})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	actor, err := requestIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessions, err := h.service.ListSessions(c.Context(), actor)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	actor, err := requestIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	result, err := h.service.CompleteSession(c.Context(), actor, sessionID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(result)
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrTrainerNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPastSessionTime),
		errors.Is(err, services.ErrUnalignedTime),
		errors.Is(err, services.ErrNoSubscription),
		errors.Is(err, services.ErrSubscriptionExpired),
		errors.Is(err, services.ErrAlreadyCompleted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "Requested slot is already booked"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
