package services

import (
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/storage"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// CatalogService exposes the read-only seva catalog.
type CatalogService struct {
	store storage.Store
}

func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ListSevas returns the limit-sized page of the ordered catalog starting at
// offset (page-1)*limit. Non-positive page or limit fall back to the
// defaults; an out-of-range page yields an empty slice, never an error.
func (s *CatalogService) ListSevas(page, limit int) ([]*models.Seva, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return s.store.ListSevas(page, limit)
}

// GetSevaByCode returns the first seva with the given code, or
// storage.ErrNotFound.
func (s *CatalogService) GetSevaByCode(code string) (*models.Seva, error) {
	return s.store.GetSevaByCode(code)
}
