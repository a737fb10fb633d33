package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
)

type stubPurchaseSummarizer struct {
	summary  *repository.FinanceSummary
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (r *stubPurchaseSummarizer) SummarizeBetween(_ context.Context, from, to time.Time) (*repository.FinanceSummary, error) {
	r.lastFrom = from
	r.lastTo = to
	return r.summary, r.err
}

type stubUserLister struct {
	users []models.User
	err   error
}

func (r *stubUserLister) ListAll(_ context.Context) ([]models.User, error) {
	return r.users, r.err
}

func TestFinanceForMonthRejectsBadFormat(t *testing.T) {
	service := NewReportService(&stubPurchaseSummarizer{}, &stubUserLister{})

	for _, month := range []string{"", "2024", "06-2024", "2024-6", "2024-13"} {
		if _, err := service.FinanceForMonth(context.Background(), month); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for %q, got %v", month, err)
		}
	}
}

func TestFinanceForMonthUsesHalfOpenWindow(t *testing.T) {
	summarizer := &stubPurchaseSummarizer{
		summary: &repository.FinanceSummary{TotalAmount: 3200, TotalSales: 2},
	}
	service := NewReportService(summarizer, &stubUserLister{})

	report, err := service.FinanceForMonth(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("FinanceForMonth: %v", err)
	}

	wantFrom := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !summarizer.lastFrom.Equal(wantFrom) || !summarizer.lastTo.Equal(wantTo) {
		t.Fatalf("expected window %v..%v, got %v..%v", wantFrom, wantTo, summarizer.lastFrom, summarizer.lastTo)
	}
	if report.TotalAmount != 3200 || report.TotalSales != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Month != "2024-06" {
		t.Fatalf("expected month echoed back, got %q", report.Month)
	}
}

func TestFinanceForMonthDecemberRollsIntoNextYear(t *testing.T) {
	summarizer := &stubPurchaseSummarizer{summary: &repository.FinanceSummary{}}
	service := NewReportService(summarizer, &stubUserLister{})

	if _, err := service.FinanceForMonth(context.Background(), "2024-12"); err != nil {
		t.Fatalf("FinanceForMonth: %v", err)
	}

	wantTo := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !summarizer.lastTo.Equal(wantTo) {
		t.Fatalf("expected window end %v, got %v", wantTo, summarizer.lastTo)
	}
}

func TestUsersReportMapsEntitlementFields(t *testing.T) {
	expires := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	service := NewReportService(&stubPurchaseSummarizer{}, &stubUserLister{users: []models.User{
		{
			ID:       1,
			Username: "client-one",
			Email:    "one@example.com",
			Role:     models.RoleClient,
			Entitlement: models.Entitlement{
				Active:    true,
				ExpiresAt: &expires,
			},
		},
		{ID: 2, Username: "admin-user", Email: "admin@example.com", Role: models.RoleAdmin},
	}})

	items, err := service.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].SubscriptionActive || items[0].ExpiresAt == nil || !items[0].ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].SubscriptionActive {
		t.Fatalf("expected admin row without active subscription, got %+v", items[1])
	}
}
