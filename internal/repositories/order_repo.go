package repositories

import "canteen/internal/models"

// OrderRepository defines the interface for order data access. Orders are
// created once and only ever mutated through UpdateStatus; they are never
// deleted.
type OrderRepository interface {
	// GetAll returns every order, newest first by creation time.
	GetAll() ([]models.Order, error)
	// GetByUserID returns one user's orders, newest first by creation time.
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	// Create persists the order and one OrderItem row per snapshot line in
	// a single transaction. A pickup code collision is reported as
	// ErrDuplicatePickupCode.
	Create(order *models.Order) error
	// UpdateStatus sets the lifecycle and payment status, refreshes
	// UpdatedAt, and returns the updated order.
	UpdateStatus(id uint, orderStatus, paymentStatus string) (*models.Order, error)
}
