package repository

import (
	"context"
	"time"

	"github.com/unchain3d/cursova-backend/internal/models"
)

type CreatePurchaseInput struct {
	UserID      int64
	PlanID      int64
	Price       float64
	PurchasedAt time.Time
}

// FinanceSummary aggregates purchase records inside a half-open time window.
type FinanceSummary struct {
	TotalAmount float64
	TotalSales  int
}

type PurchaseRepository struct {
	db DBTX
}

func NewPurchaseRepository(db DBTX) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, input CreatePurchaseInput) (*models.SubscriptionPurchase, error) {
	query := `
		INSERT INTO subscription_purchases (user_id, plan_id, price, purchased_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, plan_id, price, purchased_at
	`
	var purchase models.SubscriptionPurchase
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.PlanID,
		input.Price,
		input.PurchasedAt,
	).Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.PlanID,
		&purchase.Price,
		&purchase.PurchasedAt,
	)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) SummarizeBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*FinanceSummary, error) {
	query := `
		SELECT COALESCE(SUM(price), 0), COUNT(id)
		FROM subscription_purchases
		WHERE purchased_at >= $1 AND purchased_at < $2
	`
	var summary FinanceSummary
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&summary.TotalAmount, &summary.TotalSales); err != nil {
		return nil, err
	}
	return &summary, nil
}
