package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"canteen/internal/models"
	"canteen/internal/repositories"
)

// Errors the handlers branch on.
var (
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrTotalMismatch  = errors.New("total amount does not match order lines")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrOrderFinalized = errors.New("order is already in a terminal state")
	ErrInvalidPayment = errors.New("unknown payment method")
	ErrCodesExhausted = errors.New("could not assign a unique pickup code")
)

// pickupCodeAttempts bounds the regenerate-and-retry loop on pickup code
// collisions before checkout is reported as failed.
const pickupCodeAttempts = 5

var paymentMethods = map[string]bool{
	"UPI":           true,
	"Card":          true,
	"Cash":          true,
	"QR":            true,
	"Bank Transfer": true,
}

// EventPublisher publishes order lifecycle events for downstream consumers
// such as the kitchen display. A nil publisher disables publishing.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderService handles business logic related to orders: checkout, status
// transitions, and the student/admin listings.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves every order, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves one user's orders, newest first.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder converts a cart snapshot into a durable order. The submitted
// total is verified against the sum of the lines and a mismatch is
// rejected. Payment is recorded as completed without any processing, the
// order starts out pending, and the order row plus its item rows are
// written in one transaction. The returned order carries the assigned ID
// and pickup code, which is the student's receipt.
func (s *OrderService) PlaceOrder(userID string, totalAmount float64, paymentMethod string, lines []models.OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if !paymentMethods[paymentMethod] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayment, paymentMethod)
	}

	var sum float64
	for _, line := range lines {
		if line.Quantity <= 0 || line.Price <= 0 {
			return nil, fmt.Errorf("%w: item %d", ErrTotalMismatch, line.ItemID)
		}
		sum += line.Price * float64(line.Quantity)
	}
	if math.Abs(sum-totalAmount) > 0.005 {
		return nil, fmt.Errorf("%w: submitted %.2f, computed %.2f", ErrTotalMismatch, totalAmount, sum)
	}

	// Copy the lines so the stored snapshot cannot alias caller memory.
	snapshot := make([]models.OrderLine, len(lines))
	copy(snapshot, lines)

	newOrder := &models.Order{
		UserID:        userID,
		TotalAmount:   sum,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentCompleted,
		OrderStatus:   models.OrderPending,
		Items:         snapshot,
	}

	// The pickup code column is unique, so regenerate and retry on a
	// collision instead of failing the checkout outright.
	var err error
	for attempt := 0; attempt < pickupCodeAttempts; attempt++ {
		newOrder.PickupCode = generatePickupCode()
		err = s.orderRepo.Create(newOrder)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrDuplicatePickupCode) {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts", ErrCodesExhausted, pickupCodeAttempts)
	}

	s.publishEvent("order.created", newOrder)
	return newOrder, nil
}

// UpdateOrderStatus applies a status transition to an existing order.
// Forward jumps are not validated, but an order already completed or
// cancelled can no longer change. Every update force-sets the payment
// status to completed, including cancellation, matching how the counter
// settles payment when it touches an order.
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if models.TerminalOrderStatus(current.OrderStatus) {
		return nil, fmt.Errorf("%w: order %d is %s", ErrOrderFinalized, id, current.OrderStatus)
	}

	updated, err := s.orderRepo.UpdateStatus(id, status, models.PaymentCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}

	s.publishEvent("order.status_changed", updated)
	return updated, nil
}

func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"order_status": order.OrderStatus,
		"pickup_code":  order.PickupCode,
		"total":        order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", eventType, order.ID, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}

// generatePickupCode produces the short code a student presents at the
// counter: "MEC" followed by a number in [100, 999].
func generatePickupCode() string {
	return fmt.Sprintf("MEC%d", 100+rand.Intn(900))
}
