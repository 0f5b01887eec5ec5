package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"ridepool_backend/internal/controller"
	"ridepool_backend/internal/middleware"
	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/config"
	"ridepool_backend/pkg/cron"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/geocode"
	"ridepool_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.SessionGate(middleware.GateConfig{
		PublicPaths: []string{
			"/api/auth",
			"/api/webhook",
			"/api/subscriptions/plans",
			"/api/subscriptions/payment-success",
			"/api/subscriptions/payment-cancelled",
		},
		AuthPages:    []string{"/api/auth/login", "/api/auth/register"},
		SignInURL:    cfg.Server.SignInURL,
		DashboardURL: cfg.Server.DashboardURL,
	}))

	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/logout", controller.Logout)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Route Routes
	routes := protected.Group("/routes")
	routes.Get("/search", controller.SearchRoutes)
	routes.Get("/my", controller.ListMyRoutes)
	routes.Post("/", middleware.RequireActiveSubscription(), controller.CreateRoute)
	routes.Get("/:id", controller.GetRoute)
	routes.Put("/:id", middleware.CheckRouteOwnership(), controller.UpdateRoute)
	routes.Put("/:id/deactivate", middleware.CheckRouteOwnership(), controller.DeactivateRoute)
	routes.Delete("/:id", middleware.CheckRouteOwnership(), controller.DeleteRoute)

	// Route Request Routes
	requests := protected.Group("/requests")
	requests.Post("/", controller.CreateRouteRequest)
	requests.Get("/my", controller.ListMyRequests)
	requests.Get("/incoming", controller.ListIncomingRequests)
	requests.Put("/:id/status", controller.UpdateRequestStatus)

	// Profile routes
	settings := api.Group("/settings", middleware.AuthMiddleware())
	settings.Get("/profile", controller.GetProfile)
	settings.Put("/profile", controller.UpdateProfile)
	settings.Post("/avatar", controller.UploadAvatar)
	settings.Post("/vehicle-photo", controller.UploadVehiclePhoto)

	// Geocoding routes
	geocoding := api.Group("/geocode", middleware.AuthMiddleware())
	geocoding.Get("/", controller.ForwardGeocode)
	geocoding.Get("/reverse", controller.ReverseGeocode)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/plans", controller.ListPlans)

	// Hosted checkout redirect targets, reachable without a session.
	subscriptions.Get("/payment-success", controller.HandleSubscriptionSuccess)
	subscriptions.Get("/payment-cancelled", controller.HandleSubscriptionCancel)

	subProtected := subscriptions.Use(middleware.AuthMiddleware())
	subProtected.Post("/create-checkout-session", controller.CreateCheckoutSession)
	subProtected.Post("/cancel-subscription", controller.CancelSubscription)
	subProtected.Get("/my", controller.GetMySubscription)

	// Stripe webhook
	api.Post("/webhook", controller.HandleStripeWebhook)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	controller.InitAuthController()
	controller.InitSubscriptionController(cfg.Stripe)
	controller.InitRouteController(geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent))
	storage.Init(cfg.Storage)
	cron.InitSubscriptionExpiryCron()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Route{},
		&model.RouteRequest{},
		&model.Subscription{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, cfg)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
