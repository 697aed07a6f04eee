package service

import (
	"context"
	"errors"

	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("no user found with that ID")

type UserService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
	FavoriteBooks(ctx context.Context, userID string) ([]models.Book, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error)
}

type userService struct {
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
}

func NewUserService(userRepo repository.UserRepository, favoriteRepo repository.FavoriteRepository) UserService {
	return &userService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll()
}

// Delete removes the user record only. Books and messages referencing the
// user are left in place; their owner/sender references dangle.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) FavoriteBooks(ctx context.Context, userID string) ([]models.Book, error) {
	return s.favoriteRepo.ListBooks(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error) {
	user, err := s.userRepo.UpdateFields(userID, map[string]any{"avatar": avatarURL})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
