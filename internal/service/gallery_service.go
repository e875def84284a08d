package service

import (
	"context"
	"fmt"
	"io"

	"wellspring/internal/domain"
	"wellspring/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GalleryService manages the public image gallery stored in object
// storage. The gallery is capped; the cap is checked at upload time
// and nowhere else.
type GalleryService struct {
	store  domain.ObjectStore
	logger *zerolog.Logger
}

func NewGalleryService(store domain.ObjectStore, logger *zerolog.Logger) *GalleryService {
	return &GalleryService{store: store, logger: logger}
}

// Images lists gallery entries, newest first.
func (s *GalleryService) Images(ctx context.Context) ([]models.GalleryImage, error) {
	return s.store.List(ctx, models.BucketGallery)
}

// Upload stores an image under a uuid-prefixed name so repeat uploads
// of the same filename never overwrite each other. Returns
// ErrGalleryFull when the gallery already holds the maximum.
func (s *GalleryService) Upload(ctx context.Context, filename string, r io.Reader) (*models.GalleryImage, error) {
	if filename == "" {
		return nil, ErrValidation
	}

	existing, err := s.store.List(ctx, models.BucketGallery)
	if err != nil {
		return nil, err
	}
	if len(existing) >= models.GalleryMaxImages {
		return nil, ErrGalleryFull
	}

	name := uuid.NewString() + sanitizeExt(filename)
	if err := s.store.Upload(ctx, models.BucketGallery, name, r); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img := &models.GalleryImage{
		Name: name,
		URL:  s.store.PublicURL(models.BucketGallery, name),
	}
	s.logger.Info().Str("name", name).Msg("gallery image uploaded")
	return img, nil
}

// Remove deletes a gallery image by stored name.
func (s *GalleryService) Remove(ctx context.Context, name string) error {
	if name == "" {
		return ErrValidation
	}
	return s.store.Remove(ctx, models.BucketGallery, name)
}
