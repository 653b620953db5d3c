// MyMoji ordering backend. A customer pays for a custom illustration and
// uploads a reference photo; artists upload draft renditions and the
// customer answers with feedback rounds until the order is done. The
// order state machine and its persistence live in internal/store and
// internal/models; everything external (Stripe, Supabase Storage,
// Slack, email) is a narrow collaborator.
package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mymoji-backend/internal/assets"
	"mymoji-backend/internal/config"
	"mymoji-backend/internal/database"
	"mymoji-backend/internal/handlers"
	"mymoji-backend/internal/middleware"
	"mymoji-backend/internal/notify"
	"mymoji-backend/internal/payments"
	"mymoji-backend/internal/store"
	"mymoji-backend/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Order store: Postgres when DATABASE_URL is configured, otherwise
	// an in-memory store that loses orders on restart.
	var orderStore store.Store
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()
		log.Println("Migrations completed successfully")

		pg, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize order store: %v", err)
		}
		defer pg.Close()
		orderStore = pg
	} else {
		log.Println("Warning: DATABASE_URL not set. Using in-memory order store.")
		log.Println("Orders will not survive a restart. Set DATABASE_URL for durable storage.")
		orderStore = store.NewMemory()
	}

	// Collaborators
	assetsClient, err := assets.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient)

	paymentsClient := payments.NewClient(
		cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripePriceID,
		cfg.Domain, cfg.PaymentMethodTypes,
	)

	if cfg.SlackToken == "" || cfg.SlackChannelID == "" {
		log.Println("Warning: Slack not configured. Channel notifications are disabled.")
	}
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP not configured. Customer emails are disabled.")
	}
	notifier := notify.NewNotifier(notify.Config{
		SlackToken:     cfg.SlackToken,
		SlackChannelID: cfg.SlackChannelID,
		SMTPHost:       cfg.SMTPHost,
		SMTPPort:       cfg.SMTPPort,
		SMTPUser:       cfg.SMTPUser,
		SMTPPassword:   cfg.SMTPPassword,
		FromAddress:    cfg.EmailFrom,
		Domain:         cfg.Domain,
	})

	// Handlers
	ordersHandler := handlers.NewOrdersHandler(orderStore, assetsClient, paymentsClient)
	webhookHandler := handlers.NewWebhookHandler(orderStore, paymentsClient, notifier, realtimeClient)
	renditionsHandler := handlers.NewRenditionsHandler(orderStore, assetsClient, notifier, realtimeClient)
	feedbackHandler := handlers.NewFeedbackHandler(orderStore, notifier, realtimeClient)
	mugshotHandler := handlers.NewMugshotHandler(orderStore, assetsClient, notifier, realtimeClient)
	viewsHandler := handlers.NewViewsHandler(orderStore, assetsClient)
	contactHandler := handlers.NewContactHandler(notifier)

	// Setup router
	router := gin.Default()

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")

	// Customer-facing
	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders/:customer_id/customer-view", viewsHandler.CustomerView)
	api.GET("/orders/:customer_id/download/:rendition_number", viewsHandler.Download)
	api.GET("/orders/:customer_id/feedback-view/:rendition_number", viewsHandler.FeedbackView)
	api.GET("/orders/:customer_id/mugshot", viewsHandler.Mugshot)
	api.POST("/orders/:customer_id/renditions/:rendition_number/feedback", feedbackHandler.SubmitFeedback)
	api.POST("/orders/:customer_id/mugshot", mugshotHandler.ReplaceMugshot)
	api.POST("/contact", contactHandler.Contact)

	// Artist-only
	artist := api.Group("")
	artist.Use(middleware.ArtistAuth(cfg))
	artist.POST("/orders/:customer_id/renditions", renditionsHandler.UploadRendition)
	artist.GET("/orders/:customer_id/artist-view", viewsHandler.ArtistView)

	// Webhook (no auth, Stripe signature verified in the handler)
	api.POST("/webhook", webhookHandler.HandleWebhook)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "4242"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
