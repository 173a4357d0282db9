package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// EntitlementRepository defines the interface for plan and usage data operations
type EntitlementRepository interface {
	Resolve(ctx context.Context, userID string) (*models.Entitlement, error)
	IncrementUsage(ctx context.Context, userID string) error
	SetPlan(ctx context.Context, userID string, plan models.Plan) error
}

// entitlementRepository implements EntitlementRepository
type entitlementRepository struct {
	db *gorm.DB
}

// NewEntitlementRepository creates a new entitlement repository
func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

// Resolve returns the entitlement row for the user, creating it with zero
// usage on first access.
func (r *entitlementRepository) Resolve(ctx context.Context, userID string) (*models.Entitlement, error) {
	var ent models.Entitlement
	key := cache.EntitlementKey(userID)
	err := cache.Aside(ctx, key, &ent, cache.EntitlementTTL, func() error {
		findErr := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&ent).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		ent = models.Entitlement{
			UserID:    userID,
			Plan:      string(models.PlanFree),
			FreeUsage: 0,
		}
		return r.db.WithContext(ctx).Create(&ent).Error
	})
	if err != nil {
		return nil, err
	}
	return &ent, nil
}

// IncrementUsage bumps the free usage counter by one. The counter only ever
// grows; there is no decrement path.
func (r *entitlementRepository) IncrementUsage(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Entitlement{}).
		Where("user_id = ?", userID).
		UpdateColumn("free_usage", gorm.Expr("free_usage + ?", 1)).Error
	if err == nil {
		cache.InvalidateEntitlement(ctx, userID)
	}
	return err
}

// SetPlan updates the stored plan tier. Used by seeding and by the external
// billing sync job.
func (r *entitlementRepository) SetPlan(ctx context.Context, userID string, plan models.Plan) error {
	err := r.db.WithContext(ctx).
		Model(&models.Entitlement{}).
		Where("user_id = ?", userID).
		UpdateColumn("plan", string(plan)).Error
	if err == nil {
		cache.InvalidateEntitlement(ctx, userID)
	}
	return err
}
