// Seeds the database with an admin account and a handful of sample listings
// for local development. Safe to run twice: existing rows are left alone.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"emurebook/database"
	"emurebook/internal/config"
	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/logger"
	"emurebook/internal/middleware/auth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)

	admin, err := seedAdmin(userRepo, log)
	if err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	if err := seedBooks(bookRepo, admin.ID, log); err != nil {
		log.Error("failed to seed books", "error", err)
		os.Exit(1)
	}

	log.Info("seed complete")
}

func seedAdmin(userRepo repository.UserRepository, log *slog.Logger) (*models.User, error) {
	const adminEmail = "admin@emurebook.local"

	if existing, err := userRepo.FindByEmail(adminEmail); err == nil {
		log.Info("admin user already present", "id", existing.ID)
		return existing, nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-admin"
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return nil, err
	}

	log.Info("created admin user", "id", admin.ID, "email", adminEmail)
	return admin, nil
}

func seedBooks(bookRepo repository.BookRepository, ownerID string, log *slog.Logger) error {
	ctx := context.Background()

	existing, err := bookRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("sample books already present", "count", len(existing))
		return nil
	}

	year2018 := 2018
	year2021 := 2021
	samples := []models.Book{
		{
			Title:         "Calculus: Early Transcendentals",
			Author:        "James Stewart",
			Description:   "Eighth edition, lightly annotated. Covers MATH101 and MATH102.",
			Condition:     "Good",
			Price:         25,
			Category:      "Mathematics",
			ExchangeType:  "Sell",
			Department:    "Mathematics",
			CourseCode:    "MATH101",
			Language:      "English",
			Publisher:     "Cengage",
			PublishedYear: &year2018,
			Availability:  true,
			OwnerID:       ownerID,
		},
		{
			Title:        "Introduction to Algorithms",
			Author:       "Cormen, Leiserson, Rivest, Stein",
			Description:  "Fourth edition hardcover, like new.",
			Condition:    "Like New",
			Price:        40,
			Category:     "Computer Science",
			ExchangeType: "Sell",
			Department:   "Computer Engineering",
			CourseCode:   "CMPE321",
			Language:     "English",
			Publisher:    "MIT Press",
			Availability: true,
			OwnerID:      ownerID,
		},
		{
			Title:         "Organic Chemistry",
			Author:        "Paula Bruice",
			Description:   "Free to a good home, some highlighting in early chapters.",
			Condition:     "Fair",
			Price:         0,
			Category:      "Chemistry",
			ExchangeType:  "Free",
			Department:    "Chemistry",
			CourseCode:    "CHEM201",
			Language:      "English",
			PublishedYear: &year2021,
			Availability:  true,
			OwnerID:       ownerID,
		},
	}

	for i := range samples {
		if err := bookRepo.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}

	log.Info("created sample books", "count", len(samples))
	return nil
}
