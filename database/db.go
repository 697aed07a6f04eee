package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"emurebook/internal/config"
	"emurebook/internal/http-api/models"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	// No FK constraints: user deletion deliberately leaves owned books and
	// messages behind with dangling references instead of failing.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}

	// Connection pooling
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Rating{},
		&models.Favorite{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	// Full-text index backing book search; AutoMigrate cannot express it.
	err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_books_fulltext
		ON books USING gin (to_tsvector('english', title || ' ' || author || ' ' || coalesce(description, '')))`).Error
	if err != nil {
		return err
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
