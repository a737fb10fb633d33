package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type PlanInput struct {
	Name             string
	SubscriptionType string
	Price            float64
	DurationDays     int
	VisitsLimit      *int
}

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, name, subscription_type, price, duration_days, visits_limit`

func scanPlan(row pgx.Row) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.SubscriptionType,
		&plan.Price,
		&plan.DurationDays,
		&plan.VisitsLimit,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Create(ctx context.Context, input PlanInput) (*models.SubscriptionPlan, error) {
	query := `
		INSERT INTO subscription_plans (name, subscription_type, price, duration_days, visits_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + planColumns
	return scanPlan(r.db.QueryRow(
		ctx,
		query,
		input.Name,
		input.SubscriptionType,
		input.Price,
		input.DurationDays,
		input.VisitsLimit,
	))
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	return scanPlan(r.db.QueryRow(ctx, query, id))
}

func (r *PlanRepository) List(ctx context.Context) ([]models.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.SubscriptionPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

func (r *PlanRepository) Update(ctx context.Context, id int64, input PlanInput) (*models.SubscriptionPlan, error) {
	query := `
		UPDATE subscription_plans
		SET name = $2, subscription_type = $3, price = $4, duration_days = $5, visits_limit = $6
		WHERE id = $1
		RETURNING ` + planColumns
	return scanPlan(r.db.QueryRow(
		ctx,
		query,
		id,
		input.Name,
		input.SubscriptionType,
		input.Price,
		input.DurationDays,
		input.VisitsLimit,
	))
}

func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PlanRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscription_plans`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
