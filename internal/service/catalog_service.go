package service

import (
	"context"
	"fmt"
	"sync"

	"impactready/internal/engine"
	"impactready/internal/model"
	"impactready/internal/repository"
)

// CatalogService loads the admin-authored question catalog and validates it
// once. A catalog that fails validation halts startup; the engine never runs
// against an unvalidated configuration.
type CatalogService struct {
	catalogRepo repository.CatalogRepo

	mu      sync.RWMutex
	catalog *engine.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepo) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

// Load fetches and validates the catalog. Called at startup and after seeding.
func (s *CatalogService) Load(ctx context.Context) error {
	sections, err := s.catalogRepo.GetSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	catalog, err := engine.NewCatalog(sections)
	if err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
	return nil
}

// Catalog returns the validated catalog. Nil until Load succeeds.
func (s *CatalogService) Catalog() *engine.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Replace validates and persists a new catalog, then swaps it in
func (s *CatalogService) Replace(ctx context.Context, sections []model.Section) error {
	if _, err := engine.NewCatalog(sections); err != nil {
		return err
	}
	if err := s.catalogRepo.ReplaceAll(ctx, sections); err != nil {
		return err
	}
	return s.Load(ctx)
}
