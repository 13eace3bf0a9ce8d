package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/types"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Signup always creates a plain user; seller and admin roles are granted later.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*types.AuthResponse, error) {
	email := strings.ToLower(utils.SanitizeString(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, validationError("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, validationError("password must be at least 8 characters")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrDatabaseQuery, err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	user := models.User{
		Email:    email,
		Password: req.Password,
		Name:     utils.SanitizeString(req.Name),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("%w: failed to create user: %v", ErrDatabaseQuery, err)
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*types.AuthResponse, error) {
	email := strings.ToLower(utils.SanitizeString(req.Email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to fetch user: %v", ErrDatabaseQuery, err)
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh trades a valid refresh token for a new pair. The role is re-read so
// seller promotions take effect without logging in again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil || claims.Type != string(utils.RefreshToken) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.GetProfile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issue(*user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch user: %v", ErrDatabaseQuery, err)
	}
	return &user, nil
}

func (s *AuthService) issue(user models.User) (*types.AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &types.AuthResponse{Token: *pair, User: user}, nil
}
