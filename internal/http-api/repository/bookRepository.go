package repository

import (
	"context"
	"fmt"
	"strings"

	"emurebook/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	GetAll(ctx context.Context, q BookQuery) ([]models.Book, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Book, error)
	Search(ctx context.Context, term string) ([]models.Book, error)
	Save(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id string) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// ownerSummary trims the preloaded owner to the public columns the
// listing payloads carry.
func ownerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar", "department", "phone")
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerSummary).
		Preload("Ratings").
		First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll applies the whitelisted filters, sort order and offset pagination.
func (r *bookRepository) GetAll(ctx context.Context, q BookQuery) ([]models.Book, error) {
	db := r.db.WithContext(ctx).
		Preload("Owner", ownerSummary).
		Preload("Ratings")

	for _, f := range q.Filters {
		db = db.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
	}

	order := make([]string, 0, len(q.Sort))
	for _, s := range q.Sort {
		if s.Desc {
			order = append(order, s.Column+" desc")
		} else {
			order = append(order, s.Column+" asc")
		}
	}
	db = db.Order(strings.Join(order, ", "))

	offset := (q.Page - 1) * q.PageSize

	var books []models.Book
	if err := db.Limit(q.PageSize).Offset(offset).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerSummary).
		Preload("Ratings").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books by owner: %w", err)
	}
	return books, nil
}

// Search runs a Postgres full-text query over title, author and description,
// ranked by relevance.
func (r *bookRepository) Search(ctx context.Context, term string) ([]models.Book, error) {
	const document = "to_tsvector('english', title || ' ' || author || ' ' || coalesce(description, ''))"

	var books []models.Book
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerSummary).
		Preload("Ratings").
		Where(document+" @@ plainto_tsquery('english', ?)", term).
		Clauses(clause.OrderBy{
			Expression: gorm.Expr("ts_rank("+document+", plainto_tsquery('english', ?)) DESC", term),
		}).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Save(ctx context.Context, book *models.Book) error {
	// associations are managed through their own repositories
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(book).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Delete removes the book together with its ratings, which live and die
// with the listing.
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete book ratings: %w", err)
		}
		result := tx.Delete(&models.Book{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *bookRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
