package services

import (
	"canteen/internal/models"
	"canteen/internal/repositories"
)

// CatalogService handles business logic for the canteen menu.
type CatalogService struct {
	repo repositories.FoodItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.FoodItemRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListItems retrieves menu items, optionally filtered by category.
func (s *CatalogService) ListItems(category string) ([]models.FoodItem, error) {
	return s.repo.GetAll(category)
}

// GetItem retrieves a single menu item by its ID.
func (s *CatalogService) GetItem(id uint) (*models.FoodItem, error) {
	return s.repo.GetByID(id)
}

// CreateItem adds a new menu item.
func (s *CatalogService) CreateItem(item *models.FoodItem) error {
	return s.repo.Create(item)
}

// UpdateItem updates an existing menu item.
func (s *CatalogService) UpdateItem(item *models.FoodItem) error {
	return s.repo.Update(item)
}

// DeleteItem deletes a menu item by its ID.
func (s *CatalogService) DeleteItem(id uint) error {
	return s.repo.Delete(id)
}
