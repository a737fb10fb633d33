package repository

import (
	"context"
	"time"

	"github.com/unchain3d/cursova-backend/internal/models"
)

type CreateVisitInput struct {
	UserID      int64
	TrainerID   int64
	SessionID   int64
	TrainerName string
	VisitDate   time.Time
}

type VisitRepository struct {
	db DBTX
}

func NewVisitRepository(db DBTX) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, input CreateVisitInput) (*models.VisitHistory, error) {
	query := `
		INSERT INTO visit_history (user_id, trainer_id, session_id, trainer_name, visit_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, trainer_id, session_id, trainer_name, visit_date
	`
	var visit models.VisitHistory
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.TrainerID,
		input.SessionID,
		input.TrainerName,
		input.VisitDate,
	).Scan(
		&visit.ID,
		&visit.UserID,
		&visit.TrainerID,
		&visit.SessionID,
		&visit.TrainerName,
		&visit.VisitDate,
	)
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *VisitRepository) ListByUser(ctx context.Context, userID int64) ([]models.VisitHistory, error) {
	query := `
		SELECT id, user_id, trainer_id, session_id, trainer_name, visit_date
		FROM visit_history
		WHERE user_id = $1
		ORDER BY visit_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := make([]models.VisitHistory, 0)
	for rows.Next() {
		var visit models.VisitHistory
		if err := rows.Scan(
			&visit.ID,
			&visit.UserID,
			&visit.TrainerID,
			&visit.SessionID,
			&visit.TrainerName,
			&visit.VisitDate,
		); err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}
