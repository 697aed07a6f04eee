package repository

import (
	"context"

	"emurebook/internal/http-api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, bookID string) (bool, error)
	Add(ctx context.Context, userID, bookID string) error
	Remove(ctx context.Context, userID, bookID string) error
	ListBookIDs(ctx context.Context, userID string) ([]string, error)
	ListBooks(ctx context.Context, userID string) ([]models.Book, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, bookID string) error {
	return r.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, BookID: bookID}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, bookID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepository) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("added_at asc").
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListBooks resolves the user's favorites into full book records with the
// owner summary attached.
func (r *favoriteRepository) ListBooks(ctx context.Context, userID string) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.book_id = books.id").
		Where("favorites.user_id = ?", userID).
		Preload("Owner", ownerSummary).
		Preload("Ratings").
		Order("favorites.added_at asc").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}
