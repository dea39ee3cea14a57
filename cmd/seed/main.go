package main

import (
	"context"
	"log"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/service"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// sampleFeedbacks gives a fresh install something to show on the dashboard.
var sampleFeedbacks = []model.Feedback{
	{Name: strPtr("Maya"), Email: strPtr("maya@example.com"), Feedback: "Setup took less than five minutes, really smooth experience.", Rating: 5, ProductID: "general"},
	{Name: strPtr("Jonas"), Feedback: "Works well overall, though the confirmation email arrived late.", Rating: 4, ProductID: "general"},
	{Feedback: "Decent, but I expected more export options.", Rating: 3, ProductID: "general"},
	{Name: strPtr("Priya"), Email: strPtr("priya@example.com"), Feedback: "Support resolved my billing issue within the hour. Impressed.", Rating: 5, ProductID: "billing"},
	{Feedback: "The dashboard kept logging me out on mobile.", Rating: 2, ProductID: "general"},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Feedback{}, &model.AdminUser{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	// Provision the admin account
	adminRepo := repository.NewAdminUserRepository(gormDB)
	authService := service.NewAuthService(adminRepo, auth.NewJWTService(cfg.JWTSecret))
	if err := authService.Bootstrap(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}
	log.Printf("Admin account %q provisioned", cfg.AdminUsername)

	// Insert sample feedback only into an empty table
	count, err := seedFeedbacks(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed feedback: %v", err)
	}
	if count == 0 {
		log.Println("Feedback table not empty, skipping samples")
	} else {
		log.Printf("Inserted %d sample feedback entries", count)
	}

	log.Println("Seed completed")
}

func seedFeedbacks(ctx context.Context, gormDB *gorm.DB) (int, error) {
	var existing int64
	if err := gormDB.WithContext(ctx).Model(&model.Feedback{}).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	feedbackRepo := repository.NewFeedbackRepository(gormDB)
	count := 0
	for i := range sampleFeedbacks {
		entry := sampleFeedbacks[i]
		if err := feedbackRepo.Create(ctx, &entry); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
