package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
	"github.com/unchain3d/cursova-backend/internal/services"
)

type trainerAdminRepo interface {
	Create(ctx context.Context, input repository.TrainerInput) (*models.Trainer, error)
	List(ctx context.Context) ([]models.Trainer, error)
	Update(ctx context.Context, id int64, input repository.TrainerInput) (*models.Trainer, error)
	Delete(ctx context.Context, id int64) error
}

type planAdminRepo interface {
	Create(ctx context.Context, input repository.PlanInput) (*models.SubscriptionPlan, error)
	List(ctx context.Context) ([]models.SubscriptionPlan, error)
	Update(ctx context.Context, id int64, input repository.PlanInput) (*models.SubscriptionPlan, error)
	Delete(ctx context.Context, id int64) error
}

type reportService interface {
	FinanceForMonth(ctx context.Context, month string) (*services.FinanceReport, error)
	Users(ctx context.Context) ([]services.UserReportItem, error)
}

type AdminHandler struct {
	trainerRepo trainerAdminRepo
	planRepo    planAdminRepo
	reports     reportService
}

func NewAdminHandler(
	trainerRepo trainerAdminRepo,
	planRepo planAdminRepo,
	reports *services.ReportService,
) *AdminHandler {
	return &AdminHandler{
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		reports:     reports,
	}
}

type trainerRequest struct {
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	PhotoURL        *string `json:"photo_url"`
	Rating          float64 `json:"rating"`
	Description     *string `json:"description"`
	ExperienceYears int     `json:"experience_years"`
	PricePerSession float64 `json:"price_per_session"`
}

type planRequest struct {
	Name             string  `json:"name"`
	SubscriptionType string  `json:"subscription_type"`
	Price            float64 `json:"price"`
	DurationDays     int     `json:"duration_days"`
	VisitsLimit      *int    `json:"visits_limit"`
}

func ensureAdmin(c *fiber.Ctx) bool {
	role, ok := c.Locals("role").(string)
	return ok && role == models.RoleAdmin
}

func (h *AdminHandler) ListTrainers(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	trainers, err := h.trainerRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list trainers"})
	}
	return c.JSON(fiber.Map{"trainers": trainers})
}

func (h *AdminHandler) CreateTrainer(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	req, err := parseTrainerRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trainer, err := h.trainerRepo.Create(c.Context(), trainerInputFrom(req))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create trainer"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trainer": trainer})
}

func (h *AdminHandler) UpdateTrainer(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	trainerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || trainerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer id"})
	}

	req, err := parseTrainerRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trainer, err := h.trainerRepo.Update(c.Context(), trainerID, trainerInputFrom(req))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update trainer"})
	}
	return c.JSON(fiber.Map{"trainer": trainer})
}

func (h *AdminHandler) DeleteTrainer(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	trainerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || trainerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer id"})
	}

	if err := h.trainerRepo.Delete(c.Context(), trainerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Trainer has sessions and cannot be deleted"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete trainer"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ListPlans(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	plans, err := h.planRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list subscription plans"})
	}
	return c.JSON(fiber.Map{"subscriptions": plans})
}

func (h *AdminHandler) CreatePlan(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	req, err := parsePlanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.planRepo.Create(c.Context(), planInputFrom(req))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create subscription plan"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscription": plan})
}

func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	planID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || planID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	req, err := parsePlanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.planRepo.Update(c.Context(), planID, planInputFrom(req))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription plan not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update subscription plan"})
	}
	return c.JSON(fiber.Map{"subscription": plan})
}

func (h *AdminHandler) DeletePlan(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	planID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || planID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	if err := h.planRepo.Delete(c.Context(), planID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription plan not found"})
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Subscription plan has purchases and cannot be deleted"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete subscription plan"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) UsersReport(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	users, err := h.reports.Users(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to build users report"})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) FinanceReport(c *fiber.Ctx) error {
	if !ensureAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	month := strings.TrimSpace(c.Query("month"))
	report, err := h.reports.FinanceForMonth(c.Context(), month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to build finance report"})
	}
	return c.JSON(report)
}

func parseTrainerRequest(c *fiber.Ctx) (*trainerRequest, error) {
	var req trainerRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Specialization = strings.TrimSpace(req.Specialization)
	if req.Name == "" || req.Specialization == "" {
		return nil, errors.New("name and specialization are required")
	}
	return &req, nil
}

func trainerInputFrom(req *trainerRequest) repository.TrainerInput {
	return repository.TrainerInput{
		Name:            req.Name,
		Specialization:  req.Specialization,
		PhotoURL:        req.PhotoURL,
		Rating:          req.Rating,
		Description:     req.Description,
		ExperienceYears: req.ExperienceYears,
		PricePerSession: req.PricePerSession,
	}
}

func parsePlanRequest(c *fiber.Ctx) (*planRequest, error) {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.SubscriptionType = strings.TrimSpace(req.SubscriptionType)
	if req.Name == "" || req.SubscriptionType == "" {
		return nil, errors.New("name and subscription_type are required")
	}
	if req.DurationDays <= 0 {
		return nil, errors.New("duration_days must be greater than 0")
	}
	return &req, nil
}

func planInputFrom(req *planRequest) repository.PlanInput {
	return repository.PlanInput{
		Name:             req.Name,
		SubscriptionType: req.SubscriptionType,
		Price:            req.Price,
		DurationDays:     req.DurationDays,
		VisitsLimit:      req.VisitsLimit,
	}
}
