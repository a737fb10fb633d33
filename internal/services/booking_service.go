package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
)

var (
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("slot is already booked")
	ErrTrainerNotFound     = errors.New("trainer not found")
	ErrPlanNotFound        = errors.New("subscription plan not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrPastDate            = errors.New("date is in the past")
	ErrPastSessionTime     = errors.New("session time must be in the future")
	ErrUnalignedTime       = errors.New("session time must align to a 15-minute slot")
	ErrNoSubscription      = errors.New("no active subscription")
	ErrSubscriptionExpired = errors.New("subscription has expired")
	ErrAlreadyCompleted    = errors.New("session is already completed")
)

type entitlementVerifier interface {
	VerifyUsable(ctx context.Context, userID int64) error
}

type BookingService struct {
	db           *pgxpool.Pool
	sessionRepo  *repository.SessionRepository
	trainerRepo  trainerReader
	entitlements entitlementVerifier
}

func NewBookingService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	trainerRepo trainerReader,
	entitlements entitlementVerifier,
) *BookingService {
	return &BookingService{
		db:           db,
		sessionRepo:  sessionRepo,
		trainerRepo:  trainerRepo,
		entitlements: entitlements,
	}
}

type BookSessionInput struct {
	TrainerID   int64
	SessionTime time.Time
}

// BookSession reserves one slot of the trainer's time for the caller. The
// conflict check and the insert run in one transaction serialized per trainer
// by an advisory lock; a partial unique index on (trainer_id, session_time)
// for booked rows backstops it, so a lost race always surfaces as ErrConflict.
func (s *BookingService) BookSession(
	ctx context.Context,
	actor models.Identity,
	input BookSessionInput,
) (*models.SessionDetail, error) {
	if actor.Role != models.RoleClient {
		return nil, ErrForbidden
	}

	trainer, err := s.trainerRepo.GetByID(ctx, input.TrainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	sessionTime := input.SessionTime.UTC()
	if !sessionTime.After(time.Now().UTC()) {
		return nil, ErrPastSessionTime
	}
	if !isSlotAligned(sessionTime) {
		return nil, ErrUnalignedTime
	}

	if err := s.entitlements.VerifyUsable(ctx, actor.ID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", input.TrainerID); err != nil {
		return nil, err
	}

	hasConflict, err := txSessionRepo.HasBookedConflict(ctx, input.TrainerID, sessionTime, SlotStep)
	if err != nil {
		return nil, err
	}
	if hasConflict {
		return nil, ErrConflict
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
		TrainerID:   input.TrainerID,
		ClientID:    actor.ID,
		SessionTime: sessionTime,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.SessionDetail{
		Session:     *session,
		TrainerName: trainer.Name,
	}, nil
}

type CompleteSessionResult struct {
	SessionID  int64 `json:"session_id"`
	VisitAdded bool  `json:"visit_added"`
}

// CompleteSession transitions the caller's booked session to completed and
// appends exactly one visit record in the same transaction. A repeat call is
// an error, not a no-op.
func (s *BookingService) CompleteSession(
	ctx context.Context,
	actor models.Identity,
	sessionID int64,
) (*CompleteSessionResult, error) {
	if actor.Role != models.RoleClient {
		return nil, ErrForbidden
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txTrainerRepo := repository.NewTrainerRepository(tx)
	txVisitRepo := repository.NewVisitRepository(tx)

	session, err := txSessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.ClientID != actor.ID {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.SessionStatusBooked {
		return nil, ErrAlreadyCompleted
	}

	if _, err := txSessionRepo.UpdateStatusIfCurrent(
		ctx,
		sessionID,
		models.SessionStatusBooked,
		models.SessionStatusCompleted,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}

	trainerName := ""
	trainer, err := txTrainerRepo.GetByID(ctx, session.TrainerID)
	if err == nil {
		trainerName = trainer.Name
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, err := txVisitRepo.Create(ctx, repository.CreateVisitInput{
		UserID:      session.ClientID,
		TrainerID:   session.TrainerID,
		SessionID:   session.ID,
		TrainerName: trainerName,
		VisitDate:   time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CompleteSessionResult{SessionID: sessionID, VisitAdded: true}, nil
}

func (s *BookingService) ListSessions(
	ctx context.Context,
	actor models.Identity,
) ([]models.SessionDetail, error) {
	if actor.Role != models.RoleClient {
		return nil, ErrForbidden
	}
	return s.sessionRepo.ListByClient(ctx, actor.ID)
}
