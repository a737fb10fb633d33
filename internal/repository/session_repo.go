package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type CreateSessionInput struct {
	TrainerID   int64
	ClientID    int64
	SessionTime time.Time
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, trainer_id, client_id, session_time, status, created_at`

func scanSession(row pgx.Row) (*models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.ID,
		&session.TrainerID,
		&session.ClientID,
		&session.SessionTime,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	query := `
		INSERT INTO sessions (trainer_id, client_id, session_time, status)
		VALUES ($1, $2, $3, 'booked')
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, input.TrainerID, input.ClientID, input.SessionTime))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

// HasBookedConflict reports whether the trainer already has a booked session
// whose start falls inside [slotStart, slotStart+step).
func (r *SessionRepository) HasBookedConflict(
	ctx context.Context,
	trainerID int64,
	slotStart time.Time,
	step time.Duration,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE trainer_id = $1
			  AND status = 'booked'
			  AND session_time >= $2
			  AND session_time < $3
		)
	`
	var hasConflict bool
	err := r.db.QueryRow(ctx, query, trainerID, slotStart, slotStart.Add(step)).Scan(&hasConflict)
	if err != nil {
		return false, err
	}
	return hasConflict, nil
}

func (r *SessionRepository) ListBookedBetween(
	ctx context.Context,
	trainerID int64,
	from time.Time,
	to time.Time,
) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE trainer_id = $1
		  AND status = 'booked'
		  AND session_time >= $2
		  AND session_time < $3
		ORDER BY session_time ASC
	`
	rows, err := r.db.Query(ctx, query, trainerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) ListByClient(ctx context.Context, clientID int64) ([]models.SessionDetail, error) {
	query := `
		SELECT s.id, s.trainer_id, s.client_id, s.session_time, s.status, s.created_at, t.name
		FROM sessions s
		JOIN trainers t ON t.id = s.trainer_id
		WHERE s.client_id = $1
		ORDER BY s.session_time ASC, s.id ASC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.SessionDetail, 0)
	for rows.Next() {
		var detail models.SessionDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.TrainerID,
			&detail.ClientID,
			&detail.SessionTime,
			&detail.Status,
			&detail.CreatedAt,
			&detail.TrainerName,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

// UpdateStatusIfCurrent flips the status only when it still matches
// currentStatus; pgx.ErrNoRows means the transition already happened.
func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}
