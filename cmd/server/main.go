package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/config"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/handlers"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/middleware"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/routes"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	if err := database.InitPostgresTables(); err != nil {
		log.Fatal("Failed to initialize PostgreSQL tables:", err)
	}

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (check-in activity log)
	log.Printf("Connecting to MongoDB...")
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo()

	if err := services.EnsureCheckinEventIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB check-in event indexes: %v", err)
	} else {
		log.Println("✅ MongoDB check-in event indexes ensured")
	}

	// Wire domain services from config
	services.InitConnect(cfg)
	services.InitPush(cfg)
	if services.PushConfigured() {
		log.Println("✅ Web push configured")
	} else {
		log.Println("Warning: VAPID keys not found. Push notifications will not be available")
	}

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Avatar uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Avatar uploads will not be available")
	}

	// Fan events published by any instance out to local WebSocket connections
	services.StartRedisConnectSubscriber(context.Background())

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 Tradewinds backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
