package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type TrainerInput struct {
	Name            string
	Specialization  string
	PhotoURL        *string
	Rating          float64
	Description     *string
	ExperienceYears int
	PricePerSession float64
}

type TrainerRepository struct {
	db DBTX
}

func NewTrainerRepository(db DBTX) *TrainerRepository {
	return &TrainerRepository{db: db}
}

const trainerColumns = `id, name, specialization, photo_url, rating,
	description, experience_years, price_per_session`

func scanTrainer(row pgx.Row) (*models.Trainer, error) {
	var trainer models.Trainer
	err := row.Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Specialization,
		&trainer.PhotoURL,
		&trainer.Rating,
		&trainer.Description,
		&trainer.ExperienceYears,
		&trainer.PricePerSession,
	)
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *TrainerRepository) Create(ctx context.Context, input TrainerInput) (*models.Trainer, error) {
	query := `
		INSERT INTO trainers (name, specialization, photo_url, rating, description, experience_years, price_per_session)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + trainerColumns
	return scanTrainer(r.db.QueryRow(
		ctx,
		query,
		input.Name,
		input.Specialization,
		input.PhotoURL,
		input.Rating,
		input.Description,
		input.ExperienceYears,
		input.PricePerSession,
	))
}

func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE id = $1`
	return scanTrainer(r.db.QueryRow(ctx, query, id))
}

func (r *TrainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, err
		}
		trainers = append(trainers, *trainer)
	}
	return trainers, rows.Err()
}

func (r *TrainerRepository) Update(ctx context.Context, id int64, input TrainerInput) (*models.Trainer, error) {
	query := `
		UPDATE trainers
		SET name = $2, specialization = $3, photo_url = $4, rating = $5,
			description = $6, experience_years = $7, price_per_session = $8
		WHERE id = $1
		RETURNING ` + trainerColumns
	return scanTrainer(r.db.QueryRow(
		ctx,
		query,
		id,
		input.Name,
		input.Specialization,
		input.PhotoURL,
		input.Rating,
		input.Description,
		input.ExperienceYears,
		input.PricePerSession,
	))
}

func (r *TrainerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TrainerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trainers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
