package service

import (
	"context"
	"fmt"
	"os"

	"wellspring/internal/domain"
	"wellspring/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// CatalogService manages the bookable service catalog, including the
// one-time seeding of the default offering list.
type CatalogService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewCatalogService(repo domain.Repository, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	if svc.Title == "" {
		return nil, ErrValidation
	}
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info().Str("service_id", svc.ID).Str("title", svc.Title).Msg("service created")
	return svc, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.repo.GetService(ctx, id)
}

// List returns catalog entries. With activeOnly the inactive ones are
// filtered out, which is what the public site asks for.
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]*models.Service, error) {
	return s.repo.ListServices(ctx, activeOnly)
}

func (s *CatalogService) Update(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" || svc.Title == "" {
		return ErrValidation
	}
	return s.repo.UpdateService(ctx, svc)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}
	return s.repo.DeleteService(ctx, id)
}

// SeedDefaults loads the default catalog from path and inserts it,
// but only when the catalog is completely empty. A non-empty catalog
// returns ErrCatalogNotEmpty so an accidental re-seed cannot
// duplicate or overwrite curated entries.
func (s *CatalogService) SeedDefaults(ctx context.Context, path string) (int, error) {
	count, err := s.repo.CountServices(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrCatalogNotEmpty
	}

	services, err := LoadCatalogFile(path)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SeedServices(ctx, services); err != nil {
		return 0, err
	}

	s.logger.Info().Int("count", len(services)).Str("path", path).Msg("catalog seeded")
	return len(services), nil
}

type catalogFile struct {
	Services []*models.Service `yaml:"services"`
}

// LoadCatalogFile reads a service list from a YAML seed file. Entries
// without an id get one assigned.
func LoadCatalogFile(path string) ([]*models.Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(f.Services) == 0 {
		return nil, fmt.Errorf("catalog file %s has no services", path)
	}

	for _, svc := range f.Services {
		if svc.Title == "" {
			return nil, fmt.Errorf("catalog file %s: service without title", path)
		}
		if svc.ID == "" {
			svc.ID = uuid.NewString()
		}
	}
	return f.Services, nil
}
