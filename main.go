package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"canteen/internal/cart"
	"canteen/internal/handlers"
	"canteen/internal/middleware"
	"canteen/internal/models"
	"canteen/internal/repositories"
	"canteen/internal/services"
	"canteen/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Load .env for local development, then read everything through Viper.
	_ = godotenv.Load()
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "canteen_dev_secret")
	viper.SetDefault("SQLITE_PATH", "canteen.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	// PostgreSQL when DATABASE_URL is set, local SQLite otherwise.
	// TranslateError maps driver duplicate-key failures onto
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(viper.GetString("SQLITE_PATH"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
		&cart.LineRecord{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Order lifecycle events feed the kitchen display; the app runs fine
	// without a broker.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	foodRepo := repositories.NewGORMFoodItemRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartStore := cart.NewGORMStore(db)

	seedMenu(foodRepo)
	seedAccounts(userRepo)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	catalogService := services.NewCatalogService(foodRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartStore, catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	assistantHandler := handlers.NewAssistantHandler()

	// --- Fiber App ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	// Public surface: auth, the menu, and the assistant.
	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	assistantHandler.RegisterRoutes(apiV1)

	// Admin surface. Registered before the student routes so that
	// /orders/all is matched ahead of /orders/:id.
	adminRoutes := apiV1.Group("", middleware.AuthRequired(authService), middleware.RoleRequired(models.RoleAdmin))
	catalogHandler.RegisterAdminRoutes(adminRoutes)
	orderHandler.RegisterAdminRoutes(adminRoutes)

	// Student surface: cart and orders.
	sessionRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(sessionRoutes)
	orderHandler.RegisterRoutes(sessionRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Kitchen display consumer ---
	// Logs order events from the queue; a real display would render them.
	if mqClient != nil {
		go func() {
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Kitchen display: %s %s", msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedMenu populates an empty menu with the canteen's standard items.
func seedMenu(repo repositories.FoodItemRepository) {
	count, err := repo.Count()
	if err != nil {
		log.Printf("Error checking menu for seeding: %v", err)
		return
	}
	if count > 0 {
		return
	}

	items := []models.FoodItem{
		{Name: "Idli", Description: "Steamed rice cakes with chutney and sambar", Category: models.CategoryBreakfast, Price: 20, IsAvailable: true, PreparationTime: 10},
		{Name: "Dosa", Description: "Crispy rice crepe with chutney and sambar", Category: models.CategoryBreakfast, Price: 30, IsAvailable: true, PreparationTime: 15},
		{Name: "Pongal", Description: "Savoury rice and lentil porridge", Category: models.CategoryBreakfast, Price: 25, IsAvailable: true, PreparationTime: 15},
		{Name: "Upma", Description: "Semolina cooked with vegetables", Category: models.CategoryBreakfast, Price: 20, IsAvailable: true, PreparationTime: 10},
		{Name: "Vada", Description: "Fried lentil doughnut", Category: models.CategoryBreakfast, Price: 15, IsAvailable: true, PreparationTime: 10},
		{Name: "Meals", Description: "South Indian thali with rice, sambar and sides", Category: models.CategoryLunch, Price: 60, IsAvailable: true, PreparationTime: 20},
		{Name: "Biriyani", Description: "Vegetable biriyani with raita", Category: models.CategoryLunch, Price: 80, IsAvailable: true, PreparationTime: 30},
		{Name: "Fried Rice", Description: "Vegetable fried rice", Category: models.CategoryLunch, Price: 70, IsAvailable: true, PreparationTime: 20},
		{Name: "Samosa", Description: "Crispy pastry with spiced potato filling", Category: models.CategorySnacks, Price: 15, IsAvailable: true, PreparationTime: 5},
		{Name: "Bajji", Description: "Assorted vegetable fritters", Category: models.CategorySnacks, Price: 20, IsAvailable: true, PreparationTime: 10},
		{Name: "Bonda", Description: "Fried potato dumpling", Category: models.CategorySnacks, Price: 15, IsAvailable: true, PreparationTime: 10},
		{Name: "Cutlet", Description: "Vegetable cutlet", Category: models.CategorySnacks, Price: 20, IsAvailable: true, PreparationTime: 10},
		{Name: "Vadai", Description: "Crispy fried snack", Category: models.CategorySnacks, Price: 10, IsAvailable: true, PreparationTime: 5},
		{Name: "Tea", Description: "Hot milk tea", Category: models.CategoryBeverages, Price: 10, IsAvailable: true, PreparationTime: 5},
		{Name: "Coffee", Description: "Filter coffee", Category: models.CategoryBeverages, Price: 15, IsAvailable: true, PreparationTime: 5},
		{Name: "Buttermilk", Description: "Spiced chilled buttermilk", Category: models.CategoryBeverages, Price: 15, IsAvailable: true, PreparationTime: 2},
		{Name: "Gulab Jamun", Description: "Fried dough balls in sugar syrup", Category: models.CategoryDessert, Price: 25, IsAvailable: true, PreparationTime: 5},
		{Name: "Breakfast Combo", Description: "Idli + Vada + Coffee", Category: models.CategoryCombo, Price: 50, IsAvailable: true, IsCombo: true, ComboItems: []string{"Idli", "Vada", "Coffee"}, PreparationTime: 15},
		{Name: "Lunch Special", Description: "Meals + Buttermilk", Category: models.CategoryCombo, Price: 70, IsAvailable: true, IsCombo: true, ComboItems: []string{"Meals", "Buttermilk"}, PreparationTime: 20},
		{Name: "Evening Snack Combo", Description: "Samosa + Tea", Category: models.CategoryCombo, Price: 20, IsAvailable: true, IsCombo: true, ComboItems: []string{"Samosa", "Tea"}, PreparationTime: 10},
		{Name: "Student Special Biriyani", Description: "Biriyani + Cool Drink", Category: models.CategoryCombo, Price: 90, IsAvailable: true, IsCombo: true, ComboItems: []string{"Biriyani", "Cool Drink"}, PreparationTime: 30},
	}

	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			log.Printf("Error seeding menu item %s: %v", items[i].Name, err)
		}
	}
	log.Printf("Seeded %d menu items", len(items))
}

// seedAccounts creates the default student and admin accounts on first
// boot so the admin surface is reachable out of the box.
func seedAccounts(repo repositories.UserRepository) {
	studentID := "MEC2024001"
	accounts := []models.User{
		{Email: "student@mec.edu", Password: "student123", Role: models.RoleStudent, FullName: "Rajesh Kumar", StudentID: &studentID, Phone: "9876543210"},
		{Email: "admin@mec.edu", Password: "admin123", Role: models.RoleAdmin, FullName: "Admin User", Phone: "9988776655"},
	}
	for i := range accounts {
		if _, err := repo.GetByEmail(accounts[i].Email); err == nil {
			continue
		}
		if err := repo.Create(&accounts[i]); err != nil {
			log.Printf("Error seeding account %s: %v", accounts[i].Email, err)
		}
	}
}
