package handlers

import (
	"canteen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AssistantHandler exposes the menu assistant as a stateless endpoint.
type AssistantHandler struct{}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler() *AssistantHandler {
	return &AssistantHandler{}
}

// RegisterRoutes registers the assistant route with the Fiber app.
func (h *AssistantHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/assistant", h.HandleMessage)
}

// HandleMessage answers one message from the static rule table.
func (h *AssistantHandler) HandleMessage(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"response": services.AssistantReply(req.Message),
	})
}
