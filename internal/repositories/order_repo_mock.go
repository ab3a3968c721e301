package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"canteen/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	codes  map[string]bool
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		codes:  make(map[string]bool),
		nextID: 1,
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sortNewestFirst(orderList)
	return orderList, nil
}

// GetByUserID returns one user's orders, newest first.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sortNewestFirst(orderList)
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order, enforcing the pickup code uniqueness the real
// schema declares.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.codes[order.PickupCode] {
		return fmt.Errorf("order for user %s: %w", order.UserID, ErrDuplicatePickupCode)
	}
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	r.codes[order.PickupCode] = true
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the lifecycle and payment status of an order.
func (r *MockOrderRepository) UpdateStatus(id uint, orderStatus, paymentStatus string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d for status update: %w", id, ErrNotFound)
	}
	order.OrderStatus = orderStatus
	order.PaymentStatus = paymentStatus
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
