package handlers

import (
	"errors"
	"log"
	"strconv"

	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/repositories"
	"canteen/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout, order listings, and
// status transitions.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the student-facing order routes; the caller
// guards the group with AuthRequired.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleGetOwnOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// RegisterAdminRoutes registers the admin-only order routes; the caller
// guards the group with the admin role middleware.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/all", h.HandleGetAllOrders)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// PlaceOrderRequest represents the checkout request body. Items are the
// cart snapshot; the total must match their sum.
type PlaceOrderRequest struct {
	TotalAmount   float64            `json:"total_amount" validate:"required,gt=0"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=UPI Card Cash QR 'Bank Transfer'"`
	Items         []models.OrderLine `json:"items" validate:"required,min=1,dive"`
}

// HandlePlaceOrder converts the submitted cart snapshot into an order for
// the authenticated student and returns it with its pickup code.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	order, err := h.service.PlaceOrder(middleware.SessionUserID(c), req.TotalAmount, req.PaymentMethod, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrTotalMismatch),
			errors.Is(err, services.ErrInvalidPayment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order rejected",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrCodesExhausted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not place order, please retry",
			})
		}
		log.Printf("Error creating order: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOwnOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetOwnOrders(c *fiber.Ctx) error {
	userID := middleware.SessionUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID required",
		})
	}
	orders, err := h.service.GetOrdersByUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandleGetOrderByID retrieves a single order. Students may only see their
// own orders; admins may see any.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order ID",
		})
	}
	order, err := h.service.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %d: %v", id, err)
		return serverError(c)
	}
	if c.Locals("role") != models.RoleAdmin && order.UserID != middleware.SessionUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions for this resource",
		})
	}
	return c.JSON(order)
}

// HandleGetAllOrders lists every order, newest first.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	OrderStatus string `json:"order_status" validate:"required"`
}

// HandleUpdateOrderStatus applies a lifecycle transition to an order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order ID",
		})
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	order, err := h.service.UpdateOrderStatus(uint(id), req.OrderStatus)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrOrderFinalized):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Status update rejected",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating status for order %d: %v", id, err)
		return serverError(c)
	}

	return c.JSON(order)
}
