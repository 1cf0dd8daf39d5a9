package service

import (
	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// CatalogService serves the module storefront: listing, filtering and
// single-module lookups.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: cat}
}

// ModuleFilter carries the query parameters of a module listing request.
type ModuleFilter struct {
	Category string
	Type     string
	Search   string
	Page     int
	Limit    int
}

// ListModules returns the filtered page of modules plus pagination metadata.
func (s *CatalogService) ListModules(filter ModuleFilter) ([]models.Module, *utils.Pagination, error) {
	matched := s.catalog.Filter(filter.Category, filter.Type, filter.Search)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pagination := &utils.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
	return matched[start:end], pagination, nil
}

// GetModule returns a single module by id.
func (s *CatalogService) GetModule(id string) (*models.Module, error) {
	return s.catalog.GetModuleByID(id)
}

// ListAddons returns the add-ons of the given parent module. The parent
// must exist.
func (s *CatalogService) ListAddons(parentID string) ([]models.Module, error) {
	if _, err := s.catalog.GetModuleByID(parentID); err != nil {
		return nil, err
	}
	return s.catalog.ListAddons(parentID), nil
}
