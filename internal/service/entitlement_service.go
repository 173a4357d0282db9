// Package service implements the application's business logic.
package service

import (
	"context"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// DefaultFreeUsageLimit is the lifetime number of free generations.
const DefaultFreeUsageLimit = 10

// EntitlementService resolves a user's plan and free usage and records
// consumed generations.
type EntitlementService struct {
	repo  repository.EntitlementRepository
	limit int
}

// NewEntitlementService creates an EntitlementService with the given free
// usage limit. Non-positive limits fall back to the default.
func NewEntitlementService(repo repository.EntitlementRepository, limit int) *EntitlementService {
	if limit <= 0 {
		limit = DefaultFreeUsageLimit
	}
	return &EntitlementService{repo: repo, limit: limit}
}

// Limit returns the configured free usage limit.
func (s *EntitlementService) Limit() int {
	return s.limit
}

// Resolve returns the user's normalized plan and free usage count.
// Users without an entitlement row get one created with zero usage.
func (s *EntitlementService) Resolve(ctx context.Context, userID string) (models.Plan, int, error) {
	ent, err := s.repo.Resolve(ctx, userID)
	if err != nil {
		return models.PlanFree, 0, err
	}
	return models.NormalizePlan(ent.Plan), ent.FreeUsage, nil
}

// RecordUsage bumps the free usage counter after a successful generation.
// Premium users are not counted. The increment is best-effort: a failure is
// logged and surfaced as a metric but never propagated, so a completed
// generation is never failed retroactively.
func (s *EntitlementService) RecordUsage(ctx context.Context, userID string, plan models.Plan) {
	if plan.IsPremium() {
		return
	}
	if err := s.repo.IncrementUsage(ctx, userID); err != nil {
		observability.UsageIncrementFailures.Inc()
		middleware.Logger.WarnContext(ctx, "failed to record free usage",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

// QuotaAllows is the quota gate: premium plans always pass, free plans pass
// while used is strictly below limit. used == limit denies.
func QuotaAllows(plan models.Plan, used, limit int) bool {
	return plan.IsPremium() || used < limit
}
