package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unchain3d/cursova-backend/internal/config"
	"github.com/unchain3d/cursova-backend/internal/handlers"
	"github.com/unchain3d/cursova-backend/internal/middleware"
	"github.com/unchain3d/cursova-backend/internal/repository"
	"github.com/unchain3d/cursova-backend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	planRepo := repository.NewPlanRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	subscriptionService := services.NewSubscriptionService(db, planRepo, userRepo)
	bookingService := services.NewBookingService(db, sessionRepo, trainerRepo, subscriptionService)
	availabilityService := services.NewAvailabilityService(
		trainerRepo,
		sessionRepo,
		cfg.ScheduleStartHour,
		cfg.ScheduleEndHour,
		cfg.SlotStepMinutes,
	)
	reportService := services.NewReportService(purchaseRepo, userRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	trainerHandler := handlers.NewTrainerHandler(trainerRepo, availabilityService)
	sessionHandler := handlers.NewSessionHandler(bookingService)
	subscriptionHandler := handlers.NewSubscriptionHandler(planRepo, subscriptionService)
	profileHandler := handlers.NewProfileHandler(userRepo, visitRepo)
	adminHandler := handlers.NewAdminHandler(trainerRepo, planRepo, reportService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	trainers := authProtected.Group("/trainers")
	trainers.Get("", trainerHandler.ListTrainers)
	trainers.Get("/:id", trainerHandler.GetTrainer)
	trainers.Get("/:id/availability", trainerHandler.GetAvailability)

	subscriptions := authProtected.Group("/subscriptions")
	subscriptions.Get("", subscriptionHandler.ListPlans)
	subscriptions.Post("/purchase", subscriptionHandler.Purchase)

	authProtected.Get("/profile", profileHandler.GetProfile)

	sessions := authProtected.Group("/sessions")
	sessions.Post("/book", sessionHandler.BookSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Post("/:id/complete", sessionHandler.CompleteSession)

	admin := authProtected.Group("/admin")
	admin.Get("/trainers", adminHandler.ListTrainers)
	admin.Post("/trainers", adminHandler.CreateTrainer)
	admin.Put("/trainers/:id", adminHandler.UpdateTrainer)
	admin.Delete("/trainers/:id", adminHandler.DeleteTrainer)
	admin.Get("/subscriptions", adminHandler.ListPlans)
	admin.Post("/subscriptions", adminHandler.CreatePlan)
	admin.Put("/subscriptions/:id", adminHandler.UpdatePlan)
	admin.Delete("/subscriptions/:id", adminHandler.DeletePlan)
	admin.Get("/reports/users", adminHandler.UsersReport)
	admin.Get("/reports/finance", adminHandler.FinanceReport)
}
