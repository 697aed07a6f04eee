package repository

import (
	"emurebook/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByBookAndUser(bookID, userID string) (*models.Rating, error)
	GetByBook(bookID string) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Update an existing rating
func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// GetByBookAndUser retrieves a user's rating for a specific book
func (r *ratingRepository) GetByBookAndUser(bookID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("book_id = ? AND user_id = ?", bookID, userID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByBook retrieves all ratings for a book, newest first
func (r *ratingRepository) GetByBook(bookID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("book_id = ?", bookID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
