package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/oussamai/oussamai-backend/internal/billing"
	"github.com/oussamai/oussamai-backend/internal/config"
	"github.com/oussamai/oussamai-backend/internal/handler"
	"github.com/oussamai/oussamai-backend/internal/middleware"
	"github.com/oussamai/oussamai-backend/internal/repository"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/database"
	"github.com/oussamai/oussamai-backend/pkg/email"
	"github.com/oussamai/oussamai-backend/pkg/logger"
	"github.com/oussamai/oussamai-backend/pkg/payment"
	"github.com/oussamai/oussamai-backend/pkg/storage"
	"github.com/oussamai/oussamai-backend/pkg/utils"
)

func main() {
	// .env is optional in production; config falls back to the process env.
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg := config.LoadConfig()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	weddingRepo := repository.NewWeddingRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	packageRepo := repository.NewPackageRepository(db)

	// Media storage
	r2Storage, err := storage.NewR2Storage(cfg)
	if err != nil {
		log.Fatal("failed to initialize R2 storage", zap.Error(err))
	}

	// Email service
	emailService := email.NewEmailService(cfg, log)

	// Stripe client; with no secret key it stays disabled and checkout
	// endpoints fail fast.
	stripeClient := payment.NewStripeClient(cfg.Stripe.SecretKey)
	if !stripeClient.Enabled() {
		log.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}

	// Services
	catalog := billing.DefaultCatalog()
	authService := service.NewAuthService(userRepo, emailService, cfg.JWTSecret, log)
	userService := service.NewUserService(userRepo)
	weddingService := service.NewWeddingService(weddingRepo, userRepo, taskRepo, packageRepo)
	guestService := service.NewGuestService(guestRepo, weddingRepo, emailService, log)
	taskService := service.NewTaskService(taskRepo, weddingRepo)
	budgetService := service.NewBudgetService(budgetRepo, weddingRepo)
	mediaService := service.NewMediaService(mediaRepo, weddingRepo, r2Storage, log)
	subscriptionPrices := make([]string, 0, 2)
	for _, p := range []string{cfg.Stripe.PremiumPriceID, cfg.Stripe.EnterprisePriceID} {
		if p != "" {
			subscriptionPrices = append(subscriptionPrices, p)
		}
	}
	checkoutService := service.NewCheckoutService(catalog, stripeClient, userRepo, weddingRepo, packageRepo, cfg.AppURL, subscriptionPrices, log)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService)
	weddingHandler := handler.NewWeddingHandler(weddingService, validator)
	guestHandler := handler.NewGuestHandler(guestService, validator)
	rsvpHandler := handler.NewRSVPHandler(guestService, validator)
	taskHandler := handler.NewTaskHandler(taskService, validator)
	budgetHandler := handler.NewBudgetHandler(budgetService, validator)
	mediaHandler := handler.NewMediaHandler(mediaService)
	paymentHandler := handler.NewPaymentHandler(checkoutService, validator, cfg.Stripe.WebhookSecret, log)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public RSVP pages (guest token is the credential)
	api.Get("/rsvp/:token", rsvpHandler.GetInvitation)
	api.Post("/rsvp/:token", rsvpHandler.SubmitRSVP)

	// Stripe webhook (public; signature-verified)
	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)

	// Package catalog for the pricing page
	api.Get("/payments/packages", paymentHandler.GetPackages)

	// Protected routes
	api.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)

		weddings := api.Group("/weddings")
		weddings.Post("/", weddingHandler.CreateWedding)
		weddings.Get("/", weddingHandler.GetUserWeddings)
		weddings.Get("/:weddingId", weddingHandler.GetWedding)
		weddings.Put("/:weddingId", weddingHandler.UpdateWedding)
		weddings.Delete("/:weddingId", weddingHandler.DeleteWedding)
		weddings.Get("/:weddingId/packages", weddingHandler.GetWeddingPackages)

		weddings.Get("/:weddingId/guests", guestHandler.GetWeddingGuests)
		weddings.Post("/:weddingId/guests", guestHandler.AddGuest)
		weddings.Delete("/:weddingId/guests/:guestId", guestHandler.DeleteGuest)

		weddings.Get("/:weddingId/tasks", taskHandler.GetWeddingTasks)
		weddings.Post("/:weddingId/tasks", taskHandler.CreateTask)
		weddings.Put("/:weddingId/tasks/:taskId", taskHandler.UpdateTask)
		weddings.Delete("/:weddingId/tasks/:taskId", taskHandler.DeleteTask)

		weddings.Get("/:weddingId/budget", budgetHandler.GetWeddingItems)
		weddings.Post("/:weddingId/budget", budgetHandler.CreateItem)
		weddings.Put("/:weddingId/budget/:itemId", budgetHandler.UpdateItem)
		weddings.Delete("/:weddingId/budget/:itemId", budgetHandler.DeleteItem)

		weddings.Get("/:weddingId/media", mediaHandler.GetWeddingMedia)
		weddings.Post("/:weddingId/media", mediaHandler.UploadMedia)
		weddings.Delete("/:weddingId/media/:mediaId", mediaHandler.DeleteMedia)

		// Package purchase (full or installments)
		api.Post("/checkout/package", paymentHandler.CreatePackageCheckout)

		// Premium subscription checkout and billing portal
		billingGroup := api.Group("/billing")
		billingGroup.Post("/subscribe", paymentHandler.CreateSubscriptionCheckout)
		billingGroup.Post("/portal", paymentHandler.CreateBillingPortal)
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
