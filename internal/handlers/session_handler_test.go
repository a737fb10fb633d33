package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/services"
)

type stubBookingService struct {
	bookResult     *models.SessionDetail
	bookErr        error
	completeResult *services.CompleteSessionResult
	completeErr    error
	listResult     []models.SessionDetail
	listErr        error
	lastActor      models.Identity
	lastBookInput  services.BookSessionInput
	lastSessionID  int64
}

func (s *stubBookingService) BookSession(_ context.Context, actor models.Identity, input services.BookSessionInput) (*models.SessionDetail, error) {
	s.lastActor = actor
	s.lastBookInput = input
	return s.bookResult, s.bookErr
}

func (s *stubBookingService) CompleteSession(_ context.Context, actor models.Identity, sessionID int64) (*services.CompleteSessionResult, error) {
	s.lastActor = actor
	s.lastSessionID = sessionID
	return s.completeResult, s.completeErr
}

func (s *stubBookingService) ListSessions(_ context.Context, actor models.Identity) ([]models.SessionDetail, error) {
	s.lastActor = actor
	return s.listResult, s.listErr
}

func newSessionTestApp(service bookingApplicationService, role string) *fiber.App {
	handler := &SessionHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/sessions/book", handler.BookSession)
	app.Get("/api/v1/sessions", handler.ListSessions)
	app.Post("/api/v1/sessions/:id/complete", handler.CompleteSession)
	return app
}

func TestBookSessionReturnsCreatedSession(t *testing.T) {
	sessionTime := time.Date(2030, 6, 1, 10, 15, 0, 0, time.UTC)
	service := &stubBookingService{
		bookResult: &models.SessionDetail{
			Session: models.Session{
				ID:          91,
				ClientID:    42,
				TrainerID:   7,
				SessionTime: sessionTime,
				Status:      models.SessionStatusBooked,
			},
			TrainerName: "Olena Kovalenko",
		},
	}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/book", strings.NewReader(`{
		"trainer_id": 7,
		"session_time": "2030-06-01T10:15:00Z"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastActor.ID != 42 || service.lastActor.Role != models.RoleClient {
		t.Fatalf("unexpected actor: %+v", service.lastActor)
	}
	if service.lastBookInput.TrainerID != 7 {
		t.Fatalf("expected trainer id 7, got %d", service.lastBookInput.TrainerID)
	}
	if !service.lastBookInput.SessionTime.Equal(sessionTime) {
		t.Fatalf("expected session time %v, got %v", sessionTime, service.lastBookInput.SessionTime)
	}

	var body struct {
		Session models.SessionDetail `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Session.ID != 91 || body.Session.TrainerName != "Olena Kovalenko" {
		t.Fatalf("unexpected session payload: %+v", body.Session)
	}
}

func TestBookSessionRejectsMalformedTimestamp(t *testing.T) {
	service := &stubBookingService{}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/book", strings.NewReader(`{
		"trainer_id": 7,
		"session_time": "2030-06-01 10:15"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBookSessionReturnsConflictForTakenSlot(t *testing.T) {
	service := &stubBookingService{bookErr: services.ErrConflict}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/book", strings.NewReader(`{
		"trainer_id": 7,
		"session_time": "2030-06-01T10:15:00Z"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestBookSessionDistinguishesSubscriptionErrors(t *testing.T) {
	cases := []struct {
		name        string
		serviceErr  error
		wantMessage string
	}{
		{"no subscription", services.ErrNoSubscription, "no active subscription"},
		{"expired subscription", services.ErrSubscriptionExpired, "subscription has expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubBookingService{bookErr: tc.serviceErr}
			app := newSessionTestApp(service, models.RoleClient)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/book", strings.NewReader(`{
				"trainer_id": 7,
				"session_time": "2030-06-01T10:15:00Z"
			}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(string(raw), tc.wantMessage) {
				t.Fatalf("expected body to mention %q, got %s", tc.wantMessage, raw)
			}
		})
	}
}

func TestBookSessionReturnsForbiddenForTrainerRole(t *testing.T) {
	service := &stubBookingService{bookErr: services.ErrForbidden}
	app := newSessionTestApp(service, models.RoleTrainer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/book", strings.NewReader(`{
		"trainer_id": 7,
		"session_time": "2030-06-01T10:15:00Z"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestListSessionsReturnsClientSessions(t *testing.T) {
	service := &stubBookingService{
		listResult: []models.SessionDetail{
			{Session: models.Session{ID: 5, Status: models.SessionStatusBooked}, TrainerName: "Iryna Bondar"},
		},
	}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActor.ID != 42 {
		t.Fatalf("expected actor id 42, got %d", service.lastActor.ID)
	}

	var body struct {
		Sessions []models.SessionDetail `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Sessions) != 1 || body.Sessions[0].TrainerName != "Iryna Bondar" {
		t.Fatalf("unexpected sessions payload: %+v", body.Sessions)
	}
}

func TestCompleteSessionReturnsResult(t *testing.T) {
	service := &stubBookingService{
		completeResult: &services.CompleteSessionResult{SessionID: 17, VisitAdded: true},
	}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/17/complete", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 17 {
		t.Fatalf("expected session id 17, got %d", service.lastSessionID)
	}

	var body services.CompleteSessionResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SessionID != 17 || !body.VisitAdded {
		t.Fatalf("unexpected completion payload: %+v", body)
	}
}

func TestCompleteSessionRejectsRepeatCompletion(t *testing.T) {
	service := &stubBookingService{completeErr: services.ErrAlreadyCompleted}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/17/complete", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCompleteSessionReturnsNotFoundForForeignSession(t *testing.T) {
	service := &stubBookingService{completeErr: services.ErrSessionNotFound}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/999/complete", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCompleteSessionRejectsInvalidID(t *testing.T) {
	service := &stubBookingService{}
	app := newSessionTestApp(service, models.RoleClient)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc/complete", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
