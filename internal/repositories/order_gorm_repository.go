package repositories

import (
	"errors"
	"fmt"
	"time"

	"canteen/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves every order, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByUserID retrieves one user's orders, newest first.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create persists the order and its normalized item rows in one
// transaction, so a failure after the order insert cannot leave item rows
// missing.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		items := make([]models.OrderItem, 0, len(order.Items))
		for _, line := range order.Items {
			items = append(items, models.OrderItem{
				OrderID:        order.ID,
				FoodItemID:     line.ItemID,
				Quantity:       line.Quantity,
				Price:          line.Price,
				Customizations: line.Customizations,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("order for user %s: %w", order.UserID, ErrDuplicatePickupCode)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus sets the lifecycle and payment status of an order and
// refreshes UpdatedAt.
func (r *GORMOrderRepository) UpdateStatus(id uint, orderStatus, paymentStatus string) (*models.Order, error) {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"order_status":   orderStatus,
		"payment_status": paymentStatus,
		"updated_at":     time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order with ID %d for status update: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}
