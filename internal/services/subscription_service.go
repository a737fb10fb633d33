package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unchain3d/cursova-backend/internal/models"
	"github.com/unchain3d/cursova-backend/internal/repository"
)

type planReader interface {
	GetByID(ctx context.Context, id int64) (*models.SubscriptionPlan, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type SubscriptionService struct {
	db       *pgxpool.Pool
	planRepo planReader
	userRepo userReader
}

func NewSubscriptionService(
	db *pgxpool.Pool,
	planRepo planReader,
	userRepo userReader,
) *SubscriptionService {
	return &SubscriptionService{
		db:       db,
		planRepo: planRepo,
		userRepo: userRepo,
	}
}

type PurchaseResult struct {
	SubscriptionType string    `json:"subscription_type"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// PurchaseSubscription extends the caller's entitlement by the plan duration,
// stacking on the current expiry when it is still in the future. The
// entitlement update and the purchase record commit as one unit; the user row
// is locked for the read-modify-write so concurrent purchases stack instead
// of overwriting each other.
func (s *SubscriptionService) PurchaseSubscription(
	ctx context.Context,
	actor models.Identity,
	planID int64,
) (*PurchaseResult, error) {
	if actor.Role != models.RoleClient {
		return nil, ErrForbidden
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txPurchaseRepo := repository.NewPurchaseRepository(tx)

	user, err := txUserRepo.GetByIDForUpdate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiresAt := extendExpiry(user.Entitlement, now, plan.DurationDays)

	if err := txUserRepo.UpdateEntitlement(ctx, user.ID, plan.SubscriptionType, expiresAt); err != nil {
		return nil, err
	}

	if _, err := txPurchaseRepo.Create(ctx, repository.CreatePurchaseInput{
		UserID:      user.ID,
		PlanID:      plan.ID,
		Price:       plan.Price,
		PurchasedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &PurchaseResult{
		SubscriptionType: plan.SubscriptionType,
		ExpiresAt:        expiresAt,
	}, nil
}

// extendExpiry picks the base for the new expiry: the current expiry when the
// entitlement is active and still in the future, otherwise now. Extension is
// monotonic, a purchase never moves the expiry backwards.
func extendExpiry(entitlement models.Entitlement, now time.Time, durationDays int) time.Time {
	base := now
	if entitlement.Active && entitlement.ExpiresAt != nil && entitlement.ExpiresAt.After(now) {
		base = entitlement.ExpiresAt.UTC()
	}
	return base.AddDate(0, 0, durationDays)
}

// VerifyUsable reports why the user's entitlement cannot be used right now:
// ErrNoSubscription when none was ever purchased, ErrSubscriptionExpired when
// the expiry has passed. It never writes; the stored active flag stays as the
// last purchase left it.
func (s *SubscriptionService) VerifyUsable(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Active || user.ExpiresAt == nil {
		return ErrNoSubscription
	}
	if !user.ExpiresAt.After(time.Now().UTC()) {
		return ErrSubscriptionExpired
	}
	return nil
}

// CheckEntitlement is the boolean form of VerifyUsable.
func (s *SubscriptionService) CheckEntitlement(ctx context.Context, userID int64) (bool, error) {
	err := s.VerifyUsable(ctx, userID)
	if errors.Is(err, ErrNoSubscription) || errors.Is(err, ErrSubscriptionExpired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
