package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/promptpix/promptpix/internal/clipdrop"
	"github.com/promptpix/promptpix/internal/models"
	"github.com/promptpix/promptpix/internal/repository"
)

// TextToImageGateway is the single-call adapter to the external
// text-to-image provider.
type TextToImageGateway interface {
	TextToImage(ctx context.Context, prompt string) (*clipdrop.Image, error)
}

// ImageMirror optionally copies generated bytes to external storage and
// returns a public URL.
type ImageMirror interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// GenerationService runs the credit-gated generation flow: balance check,
// provider call, image persistence, then the debit.
type GenerationService struct {
	log      *slog.Logger
	users    *repository.UserRepository
	images   *repository.ImageRepository
	gateway  TextToImageGateway
	mirror   ImageMirror
	provider string
}

type GenerationResult struct {
	ImageID       string
	ResultImage   string // data URI for immediate client display
	PublicURL     string
	ContentType   string
	CreditBalance int
	GenerationMS  int64
}

func NewGenerationService(log *slog.Logger, users *repository.UserRepository, images *repository.ImageRepository, gateway TextToImageGateway, mirror ImageMirror) *GenerationService {
	return &GenerationService{
		log:      log,
		users:    users,
		images:   images,
		gateway:  gateway,
		mirror:   mirror,
		provider: models.DefaultModel,
	}
}

func (s *GenerationService) Generate(ctx context.Context, userID, prompt string) (*GenerationResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrPromptRequired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.CreditBalance <= 0 {
		return nil, ErrInsufficientCredit
	}

	start := time.Now()
	image, err := s.gateway.TextToImage(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	elapsed := time.Since(start).Milliseconds()

	publicURL := ""
	if s.mirror != nil {
		url, uploadErr := s.mirror.Upload(ctx, image.Bytes, image.Mime)
		if uploadErr != nil {
			// The blob below is the source of truth; losing the mirror
			// only costs the public URL.
			s.log.Error("mirror upload failed", "err", uploadErr)
		} else {
			publicURL = url
		}
	}

	record := &models.Image{
		UserID:       userID,
		Prompt:       prompt,
		ContentType:  image.Mime,
		Payload:      image.Bytes,
		PublicURL:    publicURL,
		GenerationMS: elapsed,
		Model:        s.provider,
	}
	// The image row must exist before the debit is attempted: if the
	// debit then fails the user keeps an uncharged image, never the
	// other way around.
	if _, err := s.images.Create(ctx, record); err != nil {
		return nil, err
	}

	debited, err := s.users.DebitCredit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !debited {
		// A concurrent generation spent the last credit between the
		// balance check and the debit.
		return nil, ErrInsufficientCredit
	}

	return &GenerationResult{
		ImageID:       record.ID,
		ResultImage:   dataURI(image.Mime, image.Bytes),
		PublicURL:     publicURL,
		ContentType:   image.Mime,
		CreditBalance: user.CreditBalance - 1,
		GenerationMS:  elapsed,
	}, nil
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
