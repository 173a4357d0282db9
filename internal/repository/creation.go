// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CreationRepository defines the interface for creation data operations
type CreationRepository interface {
	Create(ctx context.Context, creation *models.Creation) error
	GetByID(ctx context.Context, id string) (*models.Creation, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Creation, error)
	ListPublished(ctx context.Context) ([]*models.Creation, error)
	UpdateLikes(ctx context.Context, creation *models.Creation) error
	DeleteByOwner(ctx context.Context, id, userID string) error
}

// creationRepository implements CreationRepository
type creationRepository struct {
	db *gorm.DB
}

// NewCreationRepository creates a new creation repository
func NewCreationRepository(db *gorm.DB) CreationRepository {
	return &creationRepository{db: db}
}

func (r *creationRepository) Create(ctx context.Context, creation *models.Creation) error {
	err := r.db.WithContext(ctx).Create(creation).Error
	if err == nil {
		cache.InvalidateCreations(ctx, creation.UserID)
	}
	return err
}

func (r *creationRepository) GetByID(ctx context.Context, id string) (*models.Creation, error) {
	var creation models.Creation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&creation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Creation", id)
		}
		return nil, err
	}
	return &creation, nil
}

func (r *creationRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Creation, error) {
	var creations []*models.Creation
	key := cache.OwnerCreationsKey(userID)
	err := cache.Aside(ctx, key, &creations, cache.OwnerCreationsTTL, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&creations).Error
	})
	if err != nil {
		return nil, err
	}
	return creations, nil
}

func (r *creationRepository) ListPublished(ctx context.Context) ([]*models.Creation, error) {
	var creations []*models.Creation
	err := cache.Aside(ctx, cache.PublishedFeedKey, &creations, cache.PublishedFeedTTL, func() error {
		return r.db.WithContext(ctx).
			Where("publish = ?", true).
			Order("created_at DESC").
			Find(&creations).Error
	})
	if err != nil {
		return nil, err
	}
	return creations, nil
}

// UpdateLikes writes only the likes list and the updated timestamp.
// Callers read the row, toggle membership, then call this; the
// read-modify-write window between concurrent togglers is accepted.
func (r *creationRepository) UpdateLikes(ctx context.Context, creation *models.Creation) error {
	err := r.db.WithContext(ctx).
		Model(&models.Creation{}).
		Where("id = ?", creation.ID).
		Updates(map[string]interface{}{
			"likes":      creation.Likes,
			"updated_at": time.Now(),
		}).Error
	if err == nil {
		cache.InvalidateCreations(ctx, creation.UserID)
	}
	return err
}

// DeleteByOwner removes the creation in a single conditional delete so a
// non-owner can never distinguish "not yours" from "does not exist".
func (r *creationRepository) DeleteByOwner(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Creation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Creation", id)
	}
	cache.InvalidateCreations(ctx, userID)
	return nil
}
