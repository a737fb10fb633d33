package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/unchain3d/cursova-backend/internal/models"
)

type stubProfileUserReader struct {
	user   *models.User
	err    error
	lastID int64
}

func (s *stubProfileUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.lastID = id
	return s.user, s.err
}

type stubVisitReader struct {
	visits []models.VisitHistory
	err    error
	lastID int64
}

func (s *stubVisitReader) ListByUser(_ context.Context, userID int64) ([]models.VisitHistory, error) {
	s.lastID = userID
	return s.visits, s.err
}

func newProfileTestApp(users profileUserReader, visits visitReader, role string) *fiber.App {
	handler := &ProfileHandler{userRepo: users, visitRepo: visits}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/v1/profile", handler.GetProfile)
	return app
}

func TestGetProfileReturnsSubscriptionAndVisits(t *testing.T) {
	subType := models.SubscriptionMonthClassic
	expires := time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)
	users := &stubProfileUserReader{
		user: &models.User{
			ID:       42,
			Username: "client-one",
			Email:    "client-one@example.com",
			Role:     models.RoleClient,
			Entitlement: models.Entitlement{
				SubscriptionType: &subType,
				ExpiresAt:        &expires,
				Active:           true,
			},
		},
	}
	visits := &stubVisitReader{
		visits: []models.VisitHistory{
			{ID: 1, UserID: 42, TrainerName: "Olena Kovalenko"},
		},
	}
	app := newProfileTestApp(users, visits, models.RoleClient)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if users.lastID != 42 || visits.lastID != 42 {
		t.Fatalf("expected lookups for user 42, got user=%d visits=%d", users.lastID, visits.lastID)
	}

	var body struct {
		Username           string                `json:"username"`
		SubscriptionType   *string               `json:"subscription_type"`
		SubscriptionActive bool                  `json:"subscription_active"`
		VisitHistory       []models.VisitHistory `json:"visit_history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Username != "client-one" || !body.SubscriptionActive {
		t.Fatalf("unexpected profile payload: %+v", body)
	}
	if body.SubscriptionType == nil || *body.SubscriptionType != models.SubscriptionMonthClassic {
		t.Fatalf("unexpected subscription type: %v", body.SubscriptionType)
	}
	if len(body.VisitHistory) != 1 || body.VisitHistory[0].TrainerName != "Olena Kovalenko" {
		t.Fatalf("unexpected visit history: %+v", body.VisitHistory)
	}
}

func TestGetProfileForbiddenForAdmin(t *testing.T) {
	app := newProfileTestApp(&stubProfileUserReader{}, &stubVisitReader{}, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
