package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/config"
	"github.com/unchain3d/cursova-backend/internal/database"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
	"github.com/unchain3d/cursova-backend/pkg/utils"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	planRepo := repository.NewPlanRepository(db)

	if err := seedAdmin(ctx, cfg, userRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	trainerCount, err := trainerRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count trainers: %v", err)
	}
	planCount, err := planRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count subscription plans: %v", err)
	}
	if trainerCount > 0 || planCount > 0 {
		log.Println("Catalog data already present, skipping seed")
		return
	}

	for _, trainer := range catalogTrainers() {
		if _, err := trainerRepo.Create(ctx, trainer); err != nil {
			log.Fatalf("Failed to create trainer %q: %v", trainer.Name, err)
		}
	}
	for _, plan := range catalogPlans() {
		if _, err := planRepo.Create(ctx, plan); err != nil {
			log.Fatalf("Failed to create plan %q: %v", plan.Name, err)
		}
	}

	log.Println("Seed data created")
}

func seedAdmin(ctx context.Context, cfg *config.Config, userRepo *repository.UserRepository) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("Admin credentials not configured, skipping admin seed")
		return nil
	}

	_, err := userRepo.GetByRole(ctx, models.RoleAdmin)
	if err == nil {
		log.Println("Admin already exists, skipping")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin account %q", cfg.AdminUsername)
	return nil
}

func catalogTrainers() []repository.TrainerInput {
	return []repository.TrainerInput{
		{
			Name:            "Oleksandr Petrenko",
			Specialization:  "Yoga",
			Rating:          4.3,
			Description:     strPtr("Hatha and vinyasa instructor with a decade of teaching."),
			ExperienceYears: 10,
			PricePerSession: 600,
		},
		{
			Name:            "Maria Kovalenko",
			Specialization:  "Boxing",
			Rating:          4.7,
			Description:     strPtr("National boxing champion, individual coaching."),
			ExperienceYears: 7,
			PricePerSession: 700,
		},
		{
			Name:            "Dmytro Sydorenko",
			Specialization:  "Gym",
			Rating:          4.8,
			Description:     strPtr("Strength training and muscle gain programs."),
			ExperienceYears: 5,
			PricePerSession: 550,
		},
		{
			Name:            "Anna Melnyk",
			Specialization:  "Yoga",
			Rating:          4.1,
			Description:     strPtr("Certified ashtanga yoga and meditation instructor."),
			ExperienceYears: 6,
			PricePerSession: 500,
		},
		{
			Name:            "Volodymyr Shevchenko",
			Specialization:  "Boxing",
			Rating:          4.9,
			Description:     strPtr("Former professional boxer coaching beginners and intermediates."),
			ExperienceYears: 12,
			PricePerSession: 800,
		},
	}
}

func catalogPlans() []repository.PlanInput {
	return []repository.PlanInput{
		{
			Name:             "Single visit",
			SubscriptionType: models.SubscriptionSingle,
			Price:            200,
			DurationDays:     1,
			VisitsLimit:      intPtr(1),
		},
		{
			Name:             "Month Classic",
			SubscriptionType: models.SubscriptionMonthClassic,
			Price:            1500,
			DurationDays:     30,
		},
		{
			Name:             "Year Gold",
			SubscriptionType: models.SubscriptionYearGold,
			Price:            10000,
			DurationDays:     365,
		},
	}
}
