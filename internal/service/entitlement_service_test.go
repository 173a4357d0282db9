package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaAllows(t *testing.T) {
	tests := []struct {
		name  string
		plan  models.Plan
		used  int
		limit int
		want  bool
	}{
		{"free under limit", models.PlanFree, 0, 10, true},
		{"free one below limit", models.PlanFree, 9, 10, true},
		{"free at limit denied", models.PlanFree, 10, 10, false},
		{"free over limit denied", models.PlanFree, 11, 10, false},
		{"premium at limit allowed", models.PlanPremium, 10, 10, true},
		{"premium far over limit allowed", models.PlanPremium, 5000, 10, true},
		{"zero limit denies free immediately", models.PlanFree, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuotaAllows(tt.plan, tt.used, tt.limit))
		})
	}
}

func TestEntitlementService_Resolve(t *testing.T) {
	t.Run("returns normalized plan and usage", func(t *testing.T) {
		repo := &entitlementRepoStub{
			resolveFn: func(_ context.Context, userID string) (*models.Entitlement, error) {
				return &models.Entitlement{UserID: userID, Plan: "PREMIUM", FreeUsage: 4}, nil
			},
		}
		svc := NewEntitlementService(repo, 10)

		plan, used, err := svc.Resolve(context.Background(), "user_1")
		require.NoError(t, err)
		assert.Equal(t, models.PlanPremium, plan)
		assert.Equal(t, 4, used)
	})

	t.Run("unknown plan normalizes to free", func(t *testing.T) {
		repo := &entitlementRepoStub{
			resolveFn: func(_ context.Context, userID string) (*models.Entitlement, error) {
				return &models.Entitlement{UserID: userID, Plan: "enterprise", FreeUsage: 2}, nil
			},
		}
		svc := NewEntitlementService(repo, 10)

		plan, _, err := svc.Resolve(context.Background(), "user_1")
		require.NoError(t, err)
		assert.Equal(t, models.PlanFree, plan)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &entitlementRepoStub{
			resolveFn: func(_ context.Context, _ string) (*models.Entitlement, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := NewEntitlementService(repo, 10)

		_, _, err := svc.Resolve(context.Background(), "user_1")
		assert.Error(t, err)
	})
}

func TestEntitlementService_RecordUsage(t *testing.T) {
	t.Run("increments for free users", func(t *testing.T) {
		var incremented string
		repo := &entitlementRepoStub{
			incrementUsageFn: func(_ context.Context, userID string) error {
				incremented = userID
				return nil
			},
		}
		svc := NewEntitlementService(repo, 10)

		svc.RecordUsage(context.Background(), "user_1", models.PlanFree)
		assert.Equal(t, "user_1", incremented)
	})

	t.Run("skips premium users", func(t *testing.T) {
		called := false
		repo := &entitlementRepoStub{
			incrementUsageFn: func(_ context.Context, _ string) error {
				called = true
				return nil
			},
		}
		svc := NewEntitlementService(repo, 10)

		svc.RecordUsage(context.Background(), "user_1", models.PlanPremium)
		assert.False(t, called)
	})

	t.Run("swallows increment errors", func(t *testing.T) {
		repo := &entitlementRepoStub{
			incrementUsageFn: func(_ context.Context, _ string) error {
				return errors.New("deadlock detected")
			},
		}
		svc := NewEntitlementService(repo, 10)

		assert.NotPanics(t, func() {
			svc.RecordUsage(context.Background(), "user_1", models.PlanFree)
		})
	})
}

func TestNewEntitlementService_DefaultLimit(t *testing.T) {
	svc := NewEntitlementService(&entitlementRepoStub{}, 0)
	assert.Equal(t, DefaultFreeUsageLimit, svc.Limit())

	svc = NewEntitlementService(&entitlementRepoStub{}, 25)
	assert.Equal(t, 25, svc.Limit())
}
