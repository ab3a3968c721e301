package handlers

import (
	"errors"
	"log"
	"strconv"

	"canteen/internal/models"
	"canteen/internal/repositories"
	"canteen/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the canteen menu.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public, read-only menu routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleListItems)
	menuRoutes.Get("/:id", h.HandleGetItem)
}

// RegisterAdminRoutes registers the menu management routes; the caller is
// expected to guard the group with the admin role middleware.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Post("/", h.HandleCreateItem)
	menuRoutes.Put("/:id", h.HandleUpdateItem)
	menuRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleListItems retrieves menu items, optionally filtered by the
// category query parameter.
func (h *CatalogHandler) HandleListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Query("category"))
	if err != nil {
		log.Printf("Error listing menu items: %v", err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleGetItem retrieves a single menu item by its ID.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}
	item, err := h.service.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Menu item not found",
			})
		}
		log.Printf("Error getting menu item %d: %v", id, err)
		return serverError(c)
	}
	return c.JSON(item)
}

// HandleCreateItem adds a new menu item.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.FoodItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(item); err != nil {
		return validationError(c, err)
	}
	if err := h.service.CreateItem(&item); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing menu item.
func (h *CatalogHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}
	var item models.FoodItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = uint(id)
	if err := h.validate.Struct(item); err != nil {
		return validationError(c, err)
	}
	if err := h.service.UpdateItem(&item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Menu item not found",
			})
		}
		log.Printf("Error updating menu item %d: %v", id, err)
		return serverError(c)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes a menu item by its ID.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}
	if err := h.service.DeleteItem(uint(id)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Menu item not found",
			})
		}
		log.Printf("Error deleting menu item %d: %v", id, err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"message": "Menu item deleted",
	})
}
