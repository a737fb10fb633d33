package models

import "time"

const (
	SubscriptionSingle       = "single"
	SubscriptionMonthClassic = "month_classic"
	SubscriptionYearGold     = "year_gold"
)

type SubscriptionPlan struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	SubscriptionType string  `json:"subscription_type"`
	Price            float64 `json:"price"`
	DurationDays     int     `json:"duration_days"`
	VisitsLimit      *int    `json:"visits_limit"`
}

// SubscriptionPurchase is an immutable audit record; the price is a snapshot
// of the plan price at purchase time.
type SubscriptionPurchase struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PlanID      int64     `json:"plan_id"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchased_at"`
}
