package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type trainerReader interface {
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
}

type bookedSessionReader interface {
	ListBookedBetween(ctx context.Context, trainerID int64, from, to time.Time) ([]models.Session, error)
}

type AvailabilityService struct {
	trainerRepo trainerReader
	sessionRepo bookedSessionReader
	startHour   int
	endHour     int
	stepMinutes int
}

func NewAvailabilityService(
	trainerRepo trainerReader,
	sessionRepo bookedSessionReader,
	startHour int,
	endHour int,
	stepMinutes int,
) *AvailabilityService {
	return &AvailabilityService{
		trainerRepo: trainerRepo,
		sessionRepo: sessionRepo,
		startHour:   startHour,
		endHour:     endHour,
		stepMinutes: stepMinutes,
	}
}

// ListAvailability returns every slot of the trainer's day on the given date
// ("YYYY-MM-DD", UTC) with its availability. A slot is unavailable when a
// booked session starts inside it or its instant has already passed. The call
// is read-only and safe to repeat.
func (s *AvailabilityService) ListAvailability(
	ctx context.Context,
	trainerID int64,
	date string,
) ([]models.TimeSlot, error) {
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, ErrPastDate
	}

	booked, err := s.sessionRepo.ListBookedBetween(ctx, trainerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	step := time.Duration(s.stepMinutes) * time.Minute
	labels := GenerateTimeSlots(s.startHour, s.endHour, s.stepMinutes)
	slots := make([]models.TimeSlot, 0, len(labels))
	for _, label := range labels {
		instant := day.Add(slotOffset(label))
		slots = append(slots, models.TimeSlot{
			Time:      label,
			Datetime:  instant,
			Available: !instant.Before(now) && !isSlotTaken(booked, instant, step),
		})
	}
	return slots, nil
}

func isSlotTaken(booked []models.Session, slotStart time.Time, step time.Duration) bool {
	slotEnd := slotStart.Add(step)
	for _, session := range booked {
		if !session.SessionTime.Before(slotStart) && session.SessionTime.Before(slotEnd) {
			return true
		}
	}
	return false
}

func slotOffset(label string) time.Duration {
	parsed, err := time.Parse("15:04", label)
	if err != nil {
		return 0
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute
}
