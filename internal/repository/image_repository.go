package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptpix/promptpix/internal/models"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.Model == "" {
		image.Model = models.DefaultModel
	}
	const query = `
INSERT INTO images (id, user_id, prompt, content_type, payload, public_url, generation_ms, model)
VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, image.ID, image.UserID, image.Prompt, image.ContentType, image.Payload, image.PublicURL, image.GenerationMS, image.Model); err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}
	return image, nil
}

// FindByID loads image metadata without the payload blob.
func (r *ImageRepository) FindByID(ctx context.Context, id string) (*models.Image, error) {
	const query = `
SELECT id, user_id, prompt, content_type, COALESCE(public_url, ''), is_favorite, generation_ms, model, created_at
FROM images WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	var img models.Image
	var fav int
	if err := row.Scan(&img.ID, &img.UserID, &img.Prompt, &img.ContentType, &img.PublicURL, &fav, &img.GenerationMS, &img.Model, &img.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan image: %w", err)
	}
	img.IsFavorite = fav != 0
	return &img, nil
}

// Payload loads the stored bytes and content type for raw delivery.
func (r *ImageRepository) Payload(ctx context.Context, id string) (*models.Image, error) {
	const query = `SELECT id, user_id, content_type, payload FROM images WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	var img models.Image
	if err := row.Scan(&img.ID, &img.UserID, &img.ContentType, &img.Payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan image payload: %w", err)
	}
	return &img, nil
}

// ListByUser returns the account's images newest first, metadata only.
func (r *ImageRepository) ListByUser(ctx context.Context, userID string, favoritesOnly bool) ([]models.Image, error) {
	query := `
SELECT id, user_id, prompt, content_type, COALESCE(public_url, ''), is_favorite, generation_ms, model, created_at
FROM images WHERE user_id = ?`
	if favoritesOnly {
		query += ` AND is_favorite = 1`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var img models.Image
		var fav int
		if err := rows.Scan(&img.ID, &img.UserID, &img.Prompt, &img.ContentType, &img.PublicURL, &fav, &img.GenerationMS, &img.Model, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		img.IsFavorite = fav != 0
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ImageRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	value := 0
	if favorite {
		value = 1
	}
	const query = `UPDATE images SET is_favorite = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, value, id); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM images WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
