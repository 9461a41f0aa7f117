package service

import (
	"context"
	"fmt"

	"github.com/promptpix/promptpix/internal/models"
	"github.com/promptpix/promptpix/internal/repository"
)

// ImageService covers history listing, favorites and deletion, all
// scoped to the owning account.
type ImageService struct {
	images *repository.ImageRepository
}

func NewImageService(images *repository.ImageRepository) *ImageService {
	return &ImageService{images: images}
}

func (s *ImageService) List(ctx context.Context, userID string, favoritesOnly bool) ([]models.Image, error) {
	images, err := s.images.ListByUser(ctx, userID, favoritesOnly)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return images, nil
}

// ToggleFavorite flips the flag and returns the new state.
func (s *ImageService) ToggleFavorite(ctx context.Context, userID, imageID string) (bool, error) {
	image, err := s.owned(ctx, userID, imageID)
	if err != nil {
		return false, err
	}
	newState := !image.IsFavorite
	if err := s.images.SetFavorite(ctx, imageID, newState); err != nil {
		return false, err
	}
	return newState, nil
}

func (s *ImageService) Delete(ctx context.Context, userID, imageID string) error {
	if _, err := s.owned(ctx, userID, imageID); err != nil {
		return err
	}
	return s.images.Delete(ctx, imageID)
}

// Raw returns the stored bytes and content type for streaming.
func (s *ImageService) Raw(ctx context.Context, userID, imageID string) (*models.Image, error) {
	image, err := s.images.Payload(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrNotFound
	}
	if image.UserID != userID {
		return nil, ErrForbidden
	}
	return image, nil
}

func (s *ImageService) owned(ctx context.Context, userID, imageID string) (*models.Image, error) {
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrNotFound
	}
	if image.UserID != userID {
		return nil, ErrForbidden
	}
	return image, nil
}
