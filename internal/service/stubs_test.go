package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/ai"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// creationRepoStub implements repository.CreationRepository with function
// fields so each test overrides only what it needs.
type creationRepoStub struct {
	createFn        func(ctx context.Context, creation *models.Creation) error
	getByIDFn       func(ctx context.Context, id string) (*models.Creation, error)
	listByOwnerFn   func(ctx context.Context, userID string) ([]*models.Creation, error)
	listPublishedFn func(ctx context.Context) ([]*models.Creation, error)
	updateLikesFn   func(ctx context.Context, creation *models.Creation) error
	deleteByOwnerFn func(ctx context.Context, id, userID string) error
}

func (s *creationRepoStub) Create(ctx context.Context, creation *models.Creation) error {
	if s.createFn != nil {
		return s.createFn(ctx, creation)
	}
	return nil
}

func (s *creationRepoStub) GetByID(ctx context.Context, id string) (*models.Creation, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Creation", id)
}

func (s *creationRepoStub) ListByOwner(ctx context.Context, userID string) ([]*models.Creation, error) {
	if s.listByOwnerFn != nil {
		return s.listByOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (s *creationRepoStub) ListPublished(ctx context.Context) ([]*models.Creation, error) {
	if s.listPublishedFn != nil {
		return s.listPublishedFn(ctx)
	}
	return nil, nil
}

func (s *creationRepoStub) UpdateLikes(ctx context.Context, creation *models.Creation) error {
	if s.updateLikesFn != nil {
		return s.updateLikesFn(ctx, creation)
	}
	return nil
}

func (s *creationRepoStub) DeleteByOwner(ctx context.Context, id, userID string) error {
	if s.deleteByOwnerFn != nil {
		return s.deleteByOwnerFn(ctx, id, userID)
	}
	return nil
}

// entitlementRepoStub implements repository.EntitlementRepository.
type entitlementRepoStub struct {
	resolveFn        func(ctx context.Context, userID string) (*models.Entitlement, error)
	incrementUsageFn func(ctx context.Context, userID string) error
	setPlanFn        func(ctx context.Context, userID string, plan models.Plan) error
}

func (s *entitlementRepoStub) Resolve(ctx context.Context, userID string) (*models.Entitlement, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, userID)
	}
	return &models.Entitlement{UserID: userID, Plan: string(models.PlanFree)}, nil
}

func (s *entitlementRepoStub) IncrementUsage(ctx context.Context, userID string) error {
	if s.incrementUsageFn != nil {
		return s.incrementUsageFn(ctx, userID)
	}
	return nil
}

func (s *entitlementRepoStub) SetPlan(ctx context.Context, userID string, plan models.Plan) error {
	if s.setPlanFn != nil {
		return s.setPlanFn(ctx, userID, plan)
	}
	return nil
}

// textGenStub implements ai.TextGenerator.
type textGenStub struct {
	generateFn func(ctx context.Context, req ai.TextRequest) (string, error)
}

func (s *textGenStub) GenerateText(ctx context.Context, req ai.TextRequest) (string, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return "generated text", nil
}

// imageClientStub implements ai.ImageClient.
type imageClientStub struct {
	generateFn         func(ctx context.Context, prompt string) ([]byte, error)
	removeBackgroundFn func(ctx context.Context, image []byte, filename string) ([]byte, error)
	removeObjectFn     func(ctx context.Context, image []byte, filename, object string) ([]byte, error)
}

func (s *imageClientStub) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, prompt)
	}
	return []byte("image"), nil
}

func (s *imageClientStub) RemoveBackground(ctx context.Context, image []byte, filename string) ([]byte, error) {
	if s.removeBackgroundFn != nil {
		return s.removeBackgroundFn(ctx, image, filename)
	}
	return []byte("image"), nil
}

func (s *imageClientStub) RemoveObject(ctx context.Context, image []byte, filename, object string) ([]byte, error) {
	if s.removeObjectFn != nil {
		return s.removeObjectFn(ctx, image, filename, object)
	}
	return []byte("image"), nil
}

// objectStoreStub implements storage.ObjectStore.
type objectStoreStub struct {
	putFn func(ctx context.Context, key string, data []byte) (string, error)
}

func (s *objectStoreStub) Put(ctx context.Context, key string, data []byte) (string, error) {
	if s.putFn != nil {
		return s.putFn(ctx, key, data)
	}
	return "https://cdn.example.com/" + key, nil
}

func freeEntitlement(userID string, usage int) *models.Entitlement {
	return &models.Entitlement{UserID: userID, Plan: string(models.PlanFree), FreeUsage: usage}
}

func premiumEntitlement(userID string) *models.Entitlement {
	return &models.Entitlement{UserID: userID, Plan: string(models.PlanPremium)}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
