package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"wellspring/internal/domain"
	"wellspring/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExpertService manages the practitioner roster and their photos.
type ExpertService struct {
	repo   domain.Repository
	store  domain.ObjectStore
	logger *zerolog.Logger
}

func NewExpertService(repo domain.Repository, store domain.ObjectStore, logger *zerolog.Logger) *ExpertService {
	return &ExpertService{repo: repo, store: store, logger: logger}
}

func (s *ExpertService) Create(ctx context.Context, expert *models.Expert) (*models.Expert, error) {
	if expert.Name == "" || expert.Email == "" {
		return nil, ErrValidation
	}
	if expert.ID == "" {
		expert.ID = uuid.NewString()
	}
	if err := s.repo.CreateExpert(ctx, expert); err != nil {
		return nil, err
	}
	s.logger.Info().Str("expert_id", expert.ID).Str("name", expert.Name).Msg("expert created")
	return expert, nil
}

func (s *ExpertService) Get(ctx context.Context, id string) (*models.Expert, error) {
	return s.repo.GetExpert(ctx, id)
}

func (s *ExpertService) List(ctx context.Context) ([]*models.Expert, error) {
	return s.repo.ListExperts(ctx)
}

func (s *ExpertService) Update(ctx context.Context, expert *models.Expert) error {
	if expert.ID == "" || expert.Name == "" || expert.Email == "" {
		return ErrValidation
	}
	return s.repo.UpdateExpert(ctx, expert)
}

func (s *ExpertService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}
	return s.repo.DeleteExpert(ctx, id)
}

// UploadPhoto stores a portrait in the experts bucket and points the
// expert's image URL at it. The stored name is uuid-prefixed so
// re-uploads never collide with stale copies.
func (s *ExpertService) UploadPhoto(ctx context.Context, expertID, filename string, r io.Reader) (string, error) {
	if expertID == "" || filename == "" {
		return "", ErrValidation
	}
	expert, err := s.repo.GetExpert(ctx, expertID)
	if err != nil {
		return "", fmt.Errorf("expert not found: %w", err)
	}

	name := uuid.NewString() + sanitizeExt(filename)
	if err := s.store.Upload(ctx, models.BucketExperts, name, r); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	expert.ImageURL = s.store.PublicURL(models.BucketExperts, name)
	if err := s.repo.UpdateExpert(ctx, expert); err != nil {
		return "", err
	}
	return expert.ImageURL, nil
}

// sanitizeExt returns the lowercase extension of filename, or empty
// when it has none or contains oddities.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 8 {
		return ""
	}
	return ext
}
