package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	JWTSecret         string
	AppEnv            string
	ScheduleStartHour int
	ScheduleEndHour   int
	SlotStepMinutes   int
	AdminUsername     string
	AdminEmail        string
	AdminPassword     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DB_URL", ""),
		JWTSecret:         jwtSecret,
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		ScheduleStartHour: getEnvInt("SCHEDULE_START_HOUR", 9),
		ScheduleEndHour:   getEnvInt("SCHEDULE_END_HOUR", 21),
		SlotStepMinutes:   getEnvInt("SLOT_STEP_MINUTES", 15),
		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.ScheduleStartHour < 0 || cfg.ScheduleEndHour > 24 ||
		cfg.ScheduleStartHour >= cfg.ScheduleEndHour {
		return nil, fmt.Errorf("invalid schedule hours: %d..%d", cfg.ScheduleStartHour, cfg.ScheduleEndHour)
	}
	if cfg.SlotStepMinutes <= 0 || 60%cfg.SlotStepMinutes != 0 {
		return nil, fmt.Errorf("SLOT_STEP_MINUTES must divide an hour, got %d", cfg.SlotStepMinutes)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
