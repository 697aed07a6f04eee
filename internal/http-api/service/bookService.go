package service

import (
	"context"
	"errors"
	"strings"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound    = errors.New("no book found with that ID")
	ErrNotBookOwner    = errors.New("you are not allowed to modify this book")
	ErrInvalidRating   = errors.New("please provide a rating between 1 and 5")
	ErrEmptySearchTerm = errors.New("please provide a search term")
)

// CategoryCache is the read-through cache in front of the distinct-category
// query. A nil implementation is a valid no-op.
type CategoryCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, categories []string)
	Invalidate(ctx context.Context)
}

type BookService interface {
	List(ctx context.Context, q repository.BookQuery) ([]models.Book, error)
	Search(ctx context.Context, term string) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Book, error)
	Create(ctx context.Context, ownerID string, req dto.CreateBookDTO) (*models.Book, error)
	Update(ctx context.Context, id, callerID, callerRole string, req dto.UpdateBookDTO) (*models.Book, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
	Rate(ctx context.Context, bookID, callerID string, rating int, review string) (*models.Book, error)
	ToggleFavorite(ctx context.Context, bookID, userID string) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

type bookService struct {
	bookRepo     repository.BookRepository
	ratingRepo   repository.RatingRepository
	favoriteRepo repository.FavoriteRepository
	cache        CategoryCache
}

func NewBookService(
	bookRepo repository.BookRepository,
	ratingRepo repository.RatingRepository,
	favoriteRepo repository.FavoriteRepository,
	cache CategoryCache,
) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		ratingRepo:   ratingRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
	}
}

func (s *bookService) List(ctx context.Context, q repository.BookQuery) ([]models.Book, error) {
	return s.bookRepo.GetAll(ctx, q)
}

func (s *bookService) Search(ctx context.Context, term string) ([]models.Book, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptySearchTerm
	}
	return s.bookRepo.Search(ctx, term)
}

func (s *bookService) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	return s.bookRepo.GetByOwner(ctx, ownerID)
}

// Create stores a new listing. The owner is always the authenticated caller,
// whatever the payload says.
func (s *bookService) Create(ctx context.Context, ownerID string, req dto.CreateBookDTO) (*models.Book, error) {
	book := req.ToModel()
	book.OwnerID = ownerID

	if err := s.bookRepo.Create(ctx, &book); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return s.Get(ctx, book.ID)
}

// Update merges the payload onto the stored book. Only the owner or an admin
// may touch a listing.
func (s *bookService) Update(ctx context.Context, id, callerID, callerRole string, req dto.UpdateBookDTO) (*models.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.OwnerID != callerID && callerRole != models.RoleAdmin {
		return nil, ErrNotBookOwner
	}

	req.ApplyTo(book)

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return s.Get(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if book.OwnerID != callerID && callerRole != models.RoleAdmin {
		return ErrNotBookOwner
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

// Rate upserts the caller's rating: one entry per user per book, the latest
// value wins.
func (s *bookService) Rate(ctx context.Context, bookID, callerID string, rating int, review string) (*models.Book, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.Get(ctx, bookID); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByBookAndUser(bookID, callerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Rating = rating
		existing.Review = review
		if err := s.ratingRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		newRating := &models.Rating{
			BookID: bookID,
			UserID: callerID,
			Rating: rating,
			Review: review,
		}
		if err := s.ratingRepo.Create(newRating); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, bookID)
}

// ToggleFavorite flips the book's membership in the user's favorites and
// returns the resulting favorite book ids.
func (s *bookService) ToggleFavorite(ctx context.Context, bookID, userID string) ([]string, error) {
	if _, err := s.Get(ctx, bookID); err != nil {
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if exists {
		err = s.favoriteRepo.Remove(ctx, userID, bookID)
	} else {
		err = s.favoriteRepo.Add(ctx, userID, bookID)
	}
	if err != nil {
		return nil, err
	}

	return s.favoriteRepo.ListBookIDs(ctx, userID)
}

// Categories serves the distinct category set through the Redis cache when
// one is wired, falling back to the database on any miss.
func (s *bookService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if categories, ok := s.cache.Get(ctx); ok {
			return categories, nil
		}
	}

	categories, err := s.bookRepo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, categories)
	}
	return categories, nil
}
