package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const bcryptCost = 10

// AuthService handles admin authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Bootstrap(ctx context.Context, username, password string) error
}

type authService struct {
	adminRepo  repository.AdminUserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(adminRepo repository.AdminUserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login verifies the admin credentials and issues a signed token. An unknown
// username and a wrong password return the same ErrInvalidCredentials so the
// response never reveals which check failed. Storage failures propagate.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(admin.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Bootstrap provisions the admin account, rewriting the stored password hash
// on every call. It runs once at startup, before the server accepts requests,
// and is idempotent: the upsert is keyed on the unique username.
func (s *authService) Bootstrap(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.AdminUser{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.adminRepo.Upsert(ctx, admin); err != nil {
		return fmt.Errorf("upsert admin user: %w", err)
	}

	return nil
}
