package service

import (
	"errors"
	"time"

	"emurebook/internal/config"
	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrWrongPassword      = errors.New("your current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailUnknown       = errors.New("there is no user with that email address")
	ErrNotImplemented     = errors.New("this feature is not implemented yet")
	ErrPasswordRoute      = errors.New("this route is not for password updates")
)

// Claims carried inside every issued token.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req dto.RegisterRequest) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	UpdatePassword(userID, currentPassword, newPassword string) (*models.User, string, error)
	UpdateProfile(userID string, req dto.UpdateMeRequest) (*models.User, error)
	ValidateToken(tokenString string) (*Claims, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Register creates a member account and issues a fresh token. The password
// is only ever stored as a bcrypt hash.
func (s *authService) Register(req dto.RegisterRequest) (*models.User, string, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, "", ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashedPassword,
		Department: req.Department,
		StudentID:  req.StudentID,
		Phone:      req.Phone,
		Role:       models.RoleMember,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user and returns a signed token on success. The
// response never reveals whether the email or the password was wrong.
func (s *authService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// dummy compare so unknown emails take as long as bad passwords
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdatePassword verifies the current password before storing the new hash.
// Previously issued tokens stay valid until their natural expiry.
func (s *authService) UpdatePassword(userID, currentPassword, newPassword string) (*models.User, string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, "", err
	}

	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return nil, "", ErrWrongPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, "", err
	}
	user.Password = hashedPassword

	if err := s.userRepo.Save(user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateProfile applies the allowed profile fields only. Password changes go
// through UpdatePassword.
func (s *authService) UpdateProfile(userID string, req dto.UpdateMeRequest) (*models.User, error) {
	if req.Password != nil {
		return nil, ErrPasswordRoute
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		if existing, err := s.userRepo.FindByEmail(*req.Email); err == nil && existing.ID != userID {
			return nil, ErrEmailInUse
		}
		fields["email"] = *req.Email
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return s.userRepo.FindByID(userID)
	}

	return s.userRepo.UpdateFields(userID, fields)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ForgotPassword only checks that the address is known. There is no email
// delivery; the reset flow ends here.
func (s *authService) ForgotPassword(email string) error {
	if _, err := s.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailUnknown
		}
		return err
	}
	return nil
}

// ResetPassword is a documented stub.
func (s *authService) ResetPassword(token, newPassword string) error {
	return ErrNotImplemented
}
