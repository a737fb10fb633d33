package models

import "time"

const (
	SessionStatusBooked    = "booked"
	SessionStatusCompleted = "completed"
)

type Session struct {
	ID          int64     `json:"id"`
	TrainerID   int64     `json:"trainer_id"`
	ClientID    int64     `json:"client_id"`
	SessionTime time.Time `json:"session_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionDetail struct {
	Session
	TrainerName string `json:"trainer_name"`
}

// VisitHistory rows are append-only. TrainerName is a snapshot taken when the
// session is completed, not a live reference into the trainer catalog.
type VisitHistory struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TrainerID   int64     `json:"trainer_id"`
	SessionID   int64     `json:"session_id"`
	TrainerName string    `json:"trainer_name"`
	VisitDate   time.Time `json:"visit_date"`
}

// TimeSlot is one bookable window in a trainer's day.
type TimeSlot struct {
	Time      string    `json:"time"`
	Datetime  time.Time `json:"datetime"`
	Available bool      `json:"available"`
}
