package service

import (
	"context"
	"testing"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetAll(ctx context.Context, q repository.BookQuery) ([]models.Book, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, term string) ([]models.Book, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByBookAndUser(bookID, userID string) (*models.Rating, error) {
	args := m.Called(bookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByBook(bookID string) ([]models.Rating, error) {
	args := m.Called(bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

// MockFavoriteRepository mocks the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, bookID string) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, bookID string) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFavoriteRepository) ListBooks(ctx context.Context, userID string) ([]models.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

// MockCategoryCache mocks the CategoryCache interface
type MockCategoryCache struct {
	mock.Mock
}

func (m *MockCategoryCache) Get(ctx context.Context) ([]string, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]string), args.Bool(1)
}

func (m *MockCategoryCache) Set(ctx context.Context, categories []string) {
	m.Called(ctx, categories)
}

func (m *MockCategoryCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func newBookServiceForTest() (BookService, *MockBookRepository, *MockRatingRepository, *MockFavoriteRepository) {
	bookRepo := new(MockBookRepository)
	ratingRepo := new(MockRatingRepository)
	favoriteRepo := new(MockFavoriteRepository)
	return NewBookService(bookRepo, ratingRepo, favoriteRepo, nil), bookRepo, ratingRepo, favoriteRepo
}

func TestCreateBook_OwnerIsCaller(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	var created *models.Book
	bookRepo.On("Create", ctx, mock.AnythingOfType("*models.Book")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Book)
			created.ID = "book-1"
		}).
		Return(nil)
	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1", OwnerID: "caller-1"}, nil)

	book, err := svc.Create(ctx, "caller-1", dto.CreateBookDTO{
		Title:    "Calculus",
		Author:   "Stewart",
		Category: "Mathematics",
	})

	assert.NoError(t, err)
	assert.Equal(t, "caller-1", created.OwnerID)
	assert.Equal(t, "caller-1", book.OwnerID)
	bookRepo.AssertExpectations(t)
}

func TestUpdateBook_NotOwner(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1", OwnerID: "owner-1"}, nil)

	title := "New Title"
	book, err := svc.Update(ctx, "book-1", "intruder", models.RoleMember, dto.UpdateBookDTO{Title: &title})

	assert.Equal(t, ErrNotBookOwner, err)
	assert.Nil(t, book)
	bookRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateBook_AdminOverride(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	stored := &models.Book{ID: "book-1", OwnerID: "owner-1", Title: "Old Title"}
	bookRepo.On("GetByID", ctx, "book-1").Return(stored, nil)
	bookRepo.On("Save", ctx, mock.AnythingOfType("*models.Book")).Return(nil)

	title := "New Title"
	book, err := svc.Update(ctx, "book-1", "admin-1", models.RoleAdmin, dto.UpdateBookDTO{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "New Title", book.Title)
	bookRepo.AssertExpectations(t)
}

func TestUpdateBook_PartialMerge(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	stored := &models.Book{ID: "book-1", OwnerID: "owner-1", Title: "Calculus", Price: 30}
	bookRepo.On("GetByID", ctx, "book-1").Return(stored, nil)
	bookRepo.On("Save", ctx, mock.AnythingOfType("*models.Book")).Return(nil)

	price := 25.0
	book, err := svc.Update(ctx, "book-1", "owner-1", models.RoleMember, dto.UpdateBookDTO{Price: &price})

	assert.NoError(t, err)
	assert.Equal(t, 25.0, book.Price)
	assert.Equal(t, "Calculus", book.Title)
	bookRepo.AssertExpectations(t)
}

func TestDeleteBook_NotOwner(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1", OwnerID: "owner-1"}, nil)

	err := svc.Delete(ctx, "book-1", "intruder", models.RoleMember)

	assert.Equal(t, ErrNotBookOwner, err)
	bookRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBook_NotFound(t *testing.T) {
	svc, bookRepo, _, _ := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(ctx, "missing", "caller-1", models.RoleMember)

	assert.Equal(t, ErrBookNotFound, err)
}

func TestRateBook_OutOfRange(t *testing.T) {
	svc, _, _, _ := newBookServiceForTest()
	ctx := context.Background()

	book, err := svc.Rate(ctx, "book-1", "caller-1", 6, "")

	assert.Equal(t, ErrInvalidRating, err)
	assert.Nil(t, book)

	book, err = svc.Rate(ctx, "book-1", "caller-1", 0, "")

	assert.Equal(t, ErrInvalidRating, err)
	assert.Nil(t, book)
}

func TestRateBook_FirstRating(t *testing.T) {
	svc, bookRepo, ratingRepo, _ := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1"}, nil)
	ratingRepo.On("GetByBookAndUser", "book-1", "caller-1").Return(nil, gorm.ErrRecordNotFound)
	ratingRepo.On("Create", mock.AnythingOfType("*models.Rating")).Return(nil)

	_, err := svc.Rate(ctx, "book-1", "caller-1", 4, "solid copy")

	assert.NoError(t, err)
	ratingRepo.AssertExpectations(t)
	ratingRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestRateBook_UpsertReplacesExisting(t *testing.T) {
	svc, bookRepo, ratingRepo, _ := newBookServiceForTest()
	ctx := context.Background()

	existing := &models.Rating{ID: 7, BookID: "book-1", UserID: "caller-1", Rating: 2}
	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1"}, nil)
	ratingRepo.On("GetByBookAndUser", "book-1", "caller-1").Return(existing, nil)
	ratingRepo.On("Update", existing).Return(nil)

	_, err := svc.Rate(ctx, "book-1", "caller-1", 5, "changed my mind")

	assert.NoError(t, err)
	assert.Equal(t, 5, existing.Rating)
	assert.Equal(t, "changed my mind", existing.Review)
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestToggleFavorite_Add(t *testing.T) {
	svc, bookRepo, _, favoriteRepo := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1"}, nil)
	favoriteRepo.On("Exists", ctx, "caller-1", "book-1").Return(false, nil)
	favoriteRepo.On("Add", ctx, "caller-1", "book-1").Return(nil)
	favoriteRepo.On("ListBookIDs", ctx, "caller-1").Return([]string{"book-1"}, nil)

	ids, err := svc.ToggleFavorite(ctx, "book-1", "caller-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"book-1"}, ids)
	favoriteRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleFavorite_Remove(t *testing.T) {
	svc, bookRepo, _, favoriteRepo := newBookServiceForTest()
	ctx := context.Background()

	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1"}, nil)
	favoriteRepo.On("Exists", ctx, "caller-1", "book-1").Return(true, nil)
	favoriteRepo.On("Remove", ctx, "caller-1", "book-1").Return(nil)
	favoriteRepo.On("ListBookIDs", ctx, "caller-1").Return([]string{}, nil)

	ids, err := svc.ToggleFavorite(ctx, "book-1", "caller-1")

	assert.NoError(t, err)
	assert.Empty(t, ids)
	favoriteRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_EmptyTerm(t *testing.T) {
	svc, _, _, _ := newBookServiceForTest()

	books, err := svc.Search(context.Background(), "   ")

	assert.Equal(t, ErrEmptySearchTerm, err)
	assert.Nil(t, books)
}

func TestCategories_CacheHit(t *testing.T) {
	bookRepo := new(MockBookRepository)
	cache := new(MockCategoryCache)
	svc := NewBookService(bookRepo, new(MockRatingRepository), new(MockFavoriteRepository), cache)
	ctx := context.Background()

	cache.On("Get", ctx).Return([]string{"Mathematics", "Physics"}, true)

	categories, err := svc.Categories(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Mathematics", "Physics"}, categories)
	bookRepo.AssertNotCalled(t, "DistinctCategories", mock.Anything)
}

func TestCategories_CacheMissFallsThrough(t *testing.T) {
	bookRepo := new(MockBookRepository)
	cache := new(MockCategoryCache)
	svc := NewBookService(bookRepo, new(MockRatingRepository), new(MockFavoriteRepository), cache)
	ctx := context.Background()

	cache.On("Get", ctx).Return(nil, false)
	bookRepo.On("DistinctCategories", ctx).Return([]string{"Mathematics"}, nil)
	cache.On("Set", ctx, []string{"Mathematics"}).Return()

	categories, err := svc.Categories(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Mathematics"}, categories)
	cache.AssertExpectations(t)
	bookRepo.AssertExpectations(t)
}

func TestCreateBook_InvalidatesCategoryCache(t *testing.T) {
	bookRepo := new(MockBookRepository)
	cache := new(MockCategoryCache)
	svc := NewBookService(bookRepo, new(MockRatingRepository), new(MockFavoriteRepository), cache)
	ctx := context.Background()

	bookRepo.On("Create", ctx, mock.AnythingOfType("*models.Book")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Book).ID = "book-1"
		}).
		Return(nil)
	bookRepo.On("GetByID", ctx, "book-1").Return(&models.Book{ID: "book-1"}, nil)
	cache.On("Invalidate", ctx).Return()

	_, err := svc.Create(ctx, "caller-1", dto.CreateBookDTO{Title: "T", Author: "A", Category: "C"})

	assert.NoError(t, err)
	cache.AssertExpectations(t)
}
