package main

import (
	"log"
	"net/http"
	"os"
	"time"

	_ "checkwise/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"checkwise/internal/ai"
	"checkwise/internal/auth"
	"checkwise/internal/cache"
	"checkwise/internal/config"
	"checkwise/internal/db"
	"checkwise/internal/handler"
	"checkwise/internal/model"
	"checkwise/internal/repository"
	"checkwise/internal/router"
	"checkwise/internal/scraper"
	"checkwise/internal/service"
)

// @title CheckWise API
// @version 1.0
// @description Product trust-check API with AI analysis, credit ledger, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.CheckEvent{},
			&model.Check{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Check{},
		&model.CheckEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	checkRepo := repository.NewCheckRepository(gormDB)
	eventRepo := repository.NewCheckEventRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize external collaborators
	aiClient, err := ai.NewClient(ai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: time.Duration(cfg.OpenAITimeoutSec) * time.Second,
	})
	if err != nil {
		log.Fatalf("openai init: %v", err)
	}
	fetcher := scraper.NewStubFetcher(time.Duration(cfg.FetchDelayMS) * time.Millisecond)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	analyzer := service.NewTrustAnalyzer(aiClient)
	checkService := service.NewCheckService(userRepo, checkRepo, eventRepo, fetcher, analyzer, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	checkHandler := handler.NewCheckHandler(checkService)
	billingHandler := handler.NewBillingHandler(userService)
	seedHandler := handler.NewSeedHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		checkHandler,
		billingHandler,
		seedHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
