package repositories

import (
	"errors"
	"fmt"

	"canteen/internal/models"

	"gorm.io/gorm"
)

// GORMFoodItemRepository is a GORM implementation of FoodItemRepository.
type GORMFoodItemRepository struct {
	db *gorm.DB
}

// NewGORMFoodItemRepository creates a new instance of GORMFoodItemRepository.
func NewGORMFoodItemRepository(db *gorm.DB) *GORMFoodItemRepository {
	return &GORMFoodItemRepository{
		db: db,
	}
}

// GetAll retrieves menu items, optionally filtered by category. An empty
// category returns the whole menu.
func (r *GORMFoodItemRepository) GetAll(category string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	query := r.db
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get food items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *GORMFoodItemRepository) GetByID(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food item with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get food item by ID %d: %w", id, err)
	}
	return &item, nil
}

// Create creates a new menu item in the database.
func (r *GORMFoodItemRepository) Create(item *models.FoodItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create food item: %w", err)
	}
	return nil
}

// Update updates an existing menu item in the database.
func (r *GORMFoodItemRepository) Update(item *models.FoodItem) error {
	// Select("*") writes zero values too (an item being marked unavailable
	// must stick); Save is avoided because it inserts when no row matches.
	res := r.db.Model(&models.FoodItem{}).Where("id = ?", item.ID).
		Select("*").Omit("id", "created_at").Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update food item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("food item with ID %d for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a menu item by its ID from the database.
func (r *GORMFoodItemRepository) Delete(id uint) error {
	res := r.db.Delete(&models.FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete food item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("food item with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of menu items; boot-time seeding uses it to
// decide whether the menu is empty.
func (r *GORMFoodItemRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.FoodItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count food items: %w", err)
	}
	return count, nil
}
