package repositories

import (
	"fmt"
	"sync"

	"canteen/internal/models"
)

// MockFoodItemRepository is an in-memory implementation of FoodItemRepository.
type MockFoodItemRepository struct {
	items  map[uint]models.FoodItem
	nextID uint
	mu     sync.RWMutex
}

// NewMockFoodItemRepository creates a new instance of MockFoodItemRepository.
func NewMockFoodItemRepository() *MockFoodItemRepository {
	return &MockFoodItemRepository{
		items:  make(map[uint]models.FoodItem),
		nextID: 1,
	}
}

// GetAll returns all menu items, optionally filtered by category.
func (r *MockFoodItemRepository) GetAll(category string) ([]models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.FoodItem, 0, len(r.items))
	for _, item := range r.items {
		if category == "" || item.Category == category {
			itemList = append(itemList, item)
		}
	}
	return itemList, nil
}

// GetByID returns a menu item by its ID.
func (r *MockFoodItemRepository) GetByID(id uint) (*models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("food item with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Create adds a new menu item, assigning an ID if none is set.
func (r *MockFoodItemRepository) Create(item *models.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing menu item.
func (r *MockFoodItemRepository) Update(item *models.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("food item with ID %d for update: %w", item.ID, ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a menu item by its ID.
func (r *MockFoodItemRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("food item with ID %d for deletion: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// Count returns the number of menu items.
func (r *MockFoodItemRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
