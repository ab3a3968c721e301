package repositories

import "canteen/internal/models"

// FoodItemRepository defines the interface for menu data access. The order
// flow only ever reads through it; writes come from the admin surface.
type FoodItemRepository interface {
	GetAll(category string) ([]models.FoodItem, error)
	GetByID(id uint) (*models.FoodItem, error)
	Create(item *models.FoodItem) error
	Update(item *models.FoodItem) error
	Delete(id uint) error
	Count() (int64, error)
}
