package main

import (
	"context"
	"log"

	"checkwise/internal/cache"
	"checkwise/internal/config"
	"checkwise/internal/db"
	"checkwise/internal/handler"
	"checkwise/internal/model"
	"checkwise/internal/repository"
	"checkwise/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Check{}, &model.CheckEvent{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	userService := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)

	count, err := userService.SeedUsers(context.Background(), handler.DemoUsers())
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seeded %d demo users, one per plan tier", count)
}
