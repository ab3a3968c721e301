package handlers

import (
	"errors"
	"log"
	"strconv"

	"canteen/internal/cart"
	"canteen/internal/middleware"
	"canteen/internal/repositories"
	"canteen/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart. The cart itself
// does not gate availability, so the add route checks the catalog before
// touching it.
type CartHandler struct {
	store    cart.Store
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store cart.Store, catalog *services.CatalogService) *CartHandler {
	return &CartHandler{
		store:    store,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes; the caller is expected to
// guard the group with the student role middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the session's current lines and recomputed total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userCart, err := h.openCart(c)
	if err != nil {
		return serverError(c)
	}
	return cartResponse(c, userCart)
}

// AddItemRequest represents the request body for adding an item.
type AddItemRequest struct {
	ItemID uint `json:"item_id" validate:"required"`
}

// HandleAddItem merges one unit of a catalog item into the cart. The name
// and price on the resulting line come from the catalog, not the client.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	item, err := h.catalog.GetItem(req.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Menu item not found",
			})
		}
		log.Printf("Error looking up menu item %d: %v", req.ItemID, err)
		return serverError(c)
	}
	if !item.IsAvailable {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item is currently unavailable",
		})
	}

	userCart, err := h.openCart(c)
	if err != nil {
		return serverError(c)
	}
	if err := userCart.AddItem(item.ID, item.Name, item.Price); err != nil {
		log.Printf("Error adding item %d to cart: %v", item.ID, err)
		return serverError(c)
	}
	return cartResponse(c, userCart)
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets a line's quantity; zero or less removes the
// line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userCart, err := h.openCart(c)
	if err != nil {
		return serverError(c)
	}
	if err := userCart.UpdateQuantity(uint(itemID), req.Quantity); err != nil {
		log.Printf("Error updating quantity for item %d: %v", itemID, err)
		return serverError(c)
	}
	return cartResponse(c, userCart)
}

// HandleRemoveItem deletes a line unconditionally.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}
	userCart, err := h.openCart(c)
	if err != nil {
		return serverError(c)
	}
	if err := userCart.RemoveItem(uint(itemID)); err != nil {
		log.Printf("Error removing item %d from cart: %v", itemID, err)
		return serverError(c)
	}
	return cartResponse(c, userCart)
}

// HandleClearCart empties the session's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userCart, err := h.openCart(c)
	if err != nil {
		return serverError(c)
	}
	if err := userCart.Clear(); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return serverError(c)
	}
	return cartResponse(c, userCart)
}

func (h *CartHandler) openCart(c *fiber.Ctx) (*cart.Cart, error) {
	userCart, err := cart.Open(h.store, middleware.SessionUserID(c))
	if err != nil {
		log.Printf("Error opening cart: %v", err)
	}
	return userCart, err
}

func cartResponse(c *fiber.Ctx, userCart *cart.Cart) error {
	return c.JSON(fiber.Map{
		"items": userCart.Lines(),
		"total": userCart.Total(),
	})
}
