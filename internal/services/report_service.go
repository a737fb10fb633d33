package services

import (
	"context"
	"errors"
	"time"

	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
)

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

type purchaseSummarizer interface {
	SummarizeBetween(ctx context.Context, from, to time.Time) (*repository.FinanceSummary, error)
}

type userLister interface {
	ListAll(ctx context.Context) ([]models.User, error)
}

type ReportService struct {
	purchaseRepo purchaseSummarizer
	userRepo     userLister
}

func NewReportService(purchaseRepo purchaseSummarizer, userRepo userLister) *ReportService {
	return &ReportService{purchaseRepo: purchaseRepo, userRepo: userRepo}
}

type FinanceReport struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"total_amount"`
	TotalSales  int     `json:"total_sales"`
}

// FinanceForMonth sums purchase records over the calendar month "YYYY-MM"
// as a half-open UTC window.
func (s *ReportService) FinanceForMonth(ctx context.Context, month string) (*FinanceReport, error) {
	start, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	summary, err := s.purchaseRepo.SummarizeBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return &FinanceReport{
		Month:       month,
		TotalAmount: summary.TotalAmount,
		TotalSales:  summary.TotalSales,
	}, nil
}

type UserReportItem struct {
	ID                 int64      `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	SubscriptionActive bool       `json:"subscription_active"`
	ExpiresAt          *time.Time `json:"subscription_expires_at"`
}

func (s *ReportService) Users(ctx context.Context) ([]UserReportItem, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]UserReportItem, 0, len(users))
	for _, user := range users {
		items = append(items, UserReportItem{
			ID:                 user.ID,
			Username:           user.Username,
			Email:              user.Email,
			Role:               user.Role,
			SubscriptionActive: user.Active,
			ExpiresAt:          user.ExpiresAt,
		})
	}
	return items, nil
}
