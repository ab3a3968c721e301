package models

import "time"

// Order lifecycle statuses. An order moves pending -> preparing -> ready ->
// completed; cancelled is reachable from any non-terminal state.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Payment statuses. Payment is recorded, never processed.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// ValidOrderStatus reports whether s is a known lifecycle status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s is a terminal lifecycle status.
func TerminalOrderStatus(s string) bool {
	return s == OrderCompleted || s == OrderCancelled
}

// OrderLine is one line of the snapshot captured at checkout. Name and
// price are copied from the catalog at that moment, so later catalog edits
// never reach past orders.
type OrderLine struct {
	ItemID         uint    `json:"item_id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Quantity       int     `json:"quantity" validate:"required,gt=0"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	Customizations string  `json:"customizations,omitempty"`
}

// Order is the durable record created once per checkout. Only OrderStatus,
// PaymentStatus and UpdatedAt change after creation; the Items snapshot,
// TotalAmount and PickupCode are frozen.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	UserID        string      `json:"user_id" gorm:"index;type:varchar(36)"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method" gorm:"type:varchar(32)"`
	PaymentStatus string      `json:"payment_status" gorm:"type:varchar(16)"`
	OrderStatus   string      `json:"order_status" gorm:"type:varchar(16)"`
	PickupCode    string      `json:"pickup_code" gorm:"uniqueIndex;type:varchar(8)"`
	Items         []OrderLine `json:"items" gorm:"serializer:json"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is the normalized mirror of one snapshot line. Rows are owned
// by their Order, written in the same transaction that creates it, and
// never mutated afterwards.
type OrderItem struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	OrderID        uint    `json:"order_id" gorm:"index"`
	FoodItemID     uint    `json:"food_item_id"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	Customizations string  `json:"customizations,omitempty"`
}
