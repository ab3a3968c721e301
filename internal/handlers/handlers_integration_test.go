package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/internal/cart"
	"canteen/internal/handlers"
	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/repositories"
	"canteen/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires the full Fiber app against a fresh in-memory SQLite
// database, mirroring main.go without the broker.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
		&cart.LineRecord{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	foodRepo := repositories.NewGORMFoodItemRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartStore := cart.NewGORMStore(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	catalogService := services.NewCatalogService(foodRepo)
	orderService := services.NewOrderService(orderRepo, nil)

	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartStore, catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	assistantHandler := handlers.NewAssistantHandler()

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	assistantHandler.RegisterRoutes(apiV1)

	adminRoutes := apiV1.Group("", middleware.AuthRequired(authService), middleware.RoleRequired(models.RoleAdmin))
	catalogHandler.RegisterAdminRoutes(adminRoutes)
	orderHandler.RegisterAdminRoutes(adminRoutes)

	sessionRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(sessionRoutes)
	orderHandler.RegisterRoutes(sessionRoutes)

	seedMenuForTest(t, foodRepo)

	return app, db
}

func seedMenuForTest(t *testing.T, repo repositories.FoodItemRepository) {
	t.Helper()
	items := []models.FoodItem{
		{Name: "Dosa", Category: models.CategoryBreakfast, Price: 30, IsAvailable: true, PreparationTime: 15},
		{Name: "Tea", Category: models.CategoryBeverages, Price: 10, IsAvailable: true, PreparationTime: 5},
		{Name: "Biriyani", Category: models.CategoryLunch, Price: 80, IsAvailable: false, PreparationTime: 30},
	}
	for i := range items {
		assert.NoError(t, repo.Create(&items[i]))
	}
}

// doRequest performs one JSON request against the app and decodes the
// response body into a generic map.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	decoded := make(map[string]interface{})
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     email,
		"password":  "secret123",
		"full_name": "Test " + role,
		"role":      role,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestSignupConflictsAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	payload := map[string]interface{}{
		"email":      "student@mec.edu",
		"password":   "student123",
		"full_name":  "Rajesh Kumar",
		"role":       "student",
		"student_id": "MEC2024001",
	}

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusCreated, status)
	user := body["user"].(map[string]interface{})
	assert.NotContains(t, user, "password")
	assert.Equal(t, 0.0, user["wallet_balance"])

	// Signing up twice with the same email conflicts and creates no row.
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "student@mec.edu",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "student@mec.edu",
		"password": "student123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestMenuIsPublicAndFilterable(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/menu", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 3)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/menu?category=BEVERAGES", "", nil)
	assert.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].(map[string]interface{})["name"])
}

func TestMenuManagementRequiresAdmin(t *testing.T) {
	app, _ := setupApp(t)
	studentToken := registerAndLogin(t, app, "student@mec.edu", "student")
	adminToken := registerAndLogin(t, app, "admin@mec.edu", "admin")

	newItem := map[string]interface{}{
		"name":             "Samosa",
		"category":         "SNACKS",
		"price":            15,
		"is_available":     true,
		"preparation_time": 5,
	}

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/menu", studentToken, newItem)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/menu", adminToken, newItem)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Samosa", body["name"])
	itemPath := fmt.Sprintf("/api/v1/menu/%v", body["id"])

	// Updates are role-guarded too.
	newItem["price"] = 20
	status, _ = doRequest(t, app, http.MethodPut, itemPath, studentToken, newItem)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doRequest(t, app, http.MethodPut, itemPath, adminToken, newItem)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 20.0, body["price"])

	// The edit is visible on the public menu.
	status, body = doRequest(t, app, http.MethodGet, itemPath, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 20.0, body["price"])

	// Editing or removing an item that does not exist is a 404.
	status, _ = doRequest(t, app, http.MethodPut, "/api/v1/menu/9999", adminToken, newItem)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/menu/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodDelete, itemPath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodDelete, itemPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodGet, itemPath, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCartFlow(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "student@mec.edu", "student")

	// Unauthenticated access is rejected.
	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Adding the same item twice merges into one line with quantity 2.
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"item_id": 1})
	assert.Equal(t, http.StatusOK, status)
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"item_id": 1})
	assert.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, 2.0, items[0].(map[string]interface{})["quantity"])
	assert.Equal(t, 60.0, body["total"])

	// Unavailable items cannot be added.
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"item_id": 3})
	assert.Equal(t, http.StatusBadRequest, status)

	// Quantity zero removes the line.
	status, body = doRequest(t, app, http.MethodPatch, "/api/v1/cart/items/1", token, map[string]interface{}{"quantity": 0})
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])
	assert.Equal(t, 0.0, body["total"])

	// The cart survives across requests: add, then read back.
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"item_id": 2})
	assert.Equal(t, http.StatusOK, status)
	status, body = doRequest(t, app, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, body = doRequest(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	status, body = doRequest(t, app, http.MethodDelete, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])
}

func TestCheckoutFlow(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "student@mec.edu", "student")

	lines := []map[string]interface{}{
		{"item_id": 1, "name": "Dosa", "quantity": 2, "price": 30},
	}

	// A total that does not match the lines is rejected.
	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"total_amount":   55,
		"payment_method": "UPI",
		"items":          lines,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"total_amount":   60,
		"payment_method": "UPI",
		"items":          lines,
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 60.0, body["total_amount"])
	assert.Equal(t, models.OrderPending, body["order_status"])
	assert.Equal(t, models.PaymentCompleted, body["payment_status"])
	pickupCode := body["pickup_code"].(string)
	assert.Len(t, pickupCode, 6)
	assert.Regexp(t, `^MEC\d{3}$`, pickupCode)
}

func TestOrderListingsAndRoles(t *testing.T) {
	app, _ := setupApp(t)
	studentToken := registerAndLogin(t, app, "student@mec.edu", "student")
	otherToken := registerAndLogin(t, app, "other@mec.edu", "student")
	adminToken := registerAndLogin(t, app, "admin@mec.edu", "admin")

	for i := 0; i < 3; i++ {
		token := studentToken
		if i == 1 {
			token = otherToken
		}
		status, _ := doRequest(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"total_amount":   30,
			"payment_method": "Cash",
			"items":          []map[string]interface{}{{"item_id": 1, "name": "Dosa", "quantity": 1, "price": 30}},
		})
		assert.Equal(t, http.StatusCreated, status)
	}

	// Students see only their own orders, newest first.
	status, body := doRequest(t, app, http.MethodGet, "/api/v1/orders", studentToken, nil)
	assert.Equal(t, http.StatusOK, status)
	own := body["orders"].([]interface{})
	assert.Len(t, own, 2)

	// The admin listing is role-guarded.
	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/orders/all", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/orders/all", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	all := body["orders"].([]interface{})
	assert.Len(t, all, 3)

	// Students cannot read someone else's order.
	firstOwn := own[0].(map[string]interface{})
	orderPath := fmt.Sprintf("/api/v1/orders/%v", firstOwn["id"])
	status, _ = doRequest(t, app, http.MethodGet, orderPath, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doRequest(t, app, http.MethodGet, orderPath, studentToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestStatusTransitions(t *testing.T) {
	app, _ := setupApp(t)
	studentToken := registerAndLogin(t, app, "student@mec.edu", "student")
	adminToken := registerAndLogin(t, app, "admin@mec.edu", "admin")

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/orders", studentToken, map[string]interface{}{
		"total_amount":   30,
		"payment_method": "QR",
		"items":          []map[string]interface{}{{"item_id": 1, "name": "Dosa", "quantity": 1, "price": 30}},
	})
	assert.Equal(t, http.StatusCreated, status)
	orderPath := fmt.Sprintf("/api/v1/orders/%v/status", body["id"])

	// Students cannot transition orders.
	status, _ = doRequest(t, app, http.MethodPatch, orderPath, studentToken, map[string]interface{}{"order_status": "preparing"})
	assert.Equal(t, http.StatusForbidden, status)

	// Cancelling still settles payment.
	status, body = doRequest(t, app, http.MethodPatch, orderPath, adminToken, map[string]interface{}{"order_status": "cancelled"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderCancelled, body["order_status"])
	assert.Equal(t, models.PaymentCompleted, body["payment_status"])

	// A terminal order can no longer change.
	status, _ = doRequest(t, app, http.MethodPatch, orderPath, adminToken, map[string]interface{}{"order_status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown statuses are rejected.
	status, _ = doRequest(t, app, http.MethodPatch, "/api/v1/orders/9999/status", adminToken, map[string]interface{}{"order_status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAssistant(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/assistant", "", map[string]interface{}{
		"message": "what should I eat for breakfast?",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["response"], "Breakfast Combo")
}
