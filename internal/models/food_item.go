package models

import "time"

// Menu categories.
const (
	CategoryBreakfast = "BREAKFAST"
	CategoryLunch     = "LUNCH"
	CategorySnacks    = "SNACKS"
	CategoryBeverages = "BEVERAGES"
	CategoryDessert   = "DESSERT"
	CategoryCombo     = "COMBO OFFERS"
)

// FoodItem is a catalog entry on the canteen menu. The order flow only
// reads it; availability gates whether it can be added to a cart.
type FoodItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" validate:"required,min=2,max=100"`
	Description     string    `json:"description" validate:"omitempty,max=500"`
	Category        string    `json:"category" validate:"required,oneof=BREAKFAST LUNCH SNACKS BEVERAGES DESSERT 'COMBO OFFERS'"`
	Price           float64   `json:"price" validate:"required,gt=0"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsAvailable     bool      `json:"is_available"`
	IsCombo         bool      `json:"is_combo"`
	ComboItems      []string  `json:"combo_items,omitempty" gorm:"serializer:json"`
	PreparationTime int       `json:"preparation_time" validate:"gte=0"` // minutes
	CreatedAt       time.Time `json:"created_at"`
}
