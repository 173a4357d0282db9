package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// CreationService exposes the owner feed, the community feed and the like
// and delete operations.
type CreationService struct {
	repo repository.CreationRepository
}

// NewCreationService creates a CreationService.
func NewCreationService(repo repository.CreationRepository) *CreationService {
	return &CreationService{repo: repo}
}

// ListMine returns the caller's creations, newest first.
func (s *CreationService) ListMine(ctx context.Context, userID string) ([]*models.Creation, error) {
	if userID == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.repo.ListByOwner(ctx, userID)
}

// ListPublished returns the community feed, newest first.
func (s *CreationService) ListPublished(ctx context.Context) ([]*models.Creation, error) {
	return s.repo.ListPublished(ctx)
}

// ToggleLike flips the caller's like on a published creation and returns the
// outcome message plus the refreshed community feed. Toggling twice restores
// the original state. The read-modify-write window between concurrent
// togglers is accepted.
func (s *CreationService) ToggleLike(ctx context.Context, userID, creationID string) (string, []*models.Creation, error) {
	if userID == "" {
		return "", nil, models.NewUnauthorizedError("Authentication required")
	}
	if creationID == "" {
		return "", nil, models.NewValidationError("Creation ID is required")
	}

	creation, err := s.repo.GetByID(ctx, creationID)
	if err != nil {
		return "", nil, err
	}
	if !creation.Publish {
		return "", nil, models.NewValidationError("Only published creations can be liked")
	}

	message := "liked"
	if creation.LikedBy(userID) {
		likes := creation.Likes[:0:0]
		for _, id := range creation.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		creation.Likes = likes
		message = "unliked"
	} else {
		creation.Likes = append(creation.Likes, userID)
	}

	if err := s.repo.UpdateLikes(ctx, creation); err != nil {
		return "", nil, models.NewPersistenceError(err)
	}
	observability.LikeToggles.WithLabelValues(message).Inc()

	feed, err := s.repo.ListPublished(ctx)
	if err != nil {
		return "", nil, err
	}
	return message, feed, nil
}

// Delete removes the caller's creation. Non-owners get NotFound.
func (s *CreationService) Delete(ctx context.Context, userID, creationID string) error {
	if userID == "" {
		return models.NewUnauthorizedError("Authentication required")
	}
	if creationID == "" {
		return models.NewValidationError("Creation ID is required")
	}
	return s.repo.DeleteByOwner(ctx, creationID, userID)
}
