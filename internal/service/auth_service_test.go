package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// MockAdminUserRepository is a mock implementation of AdminUserRepository.
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Upsert(ctx context.Context, user *model.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockAdminUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "admin123",
			setupMock: func(m *MockAdminUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.AdminUser{
					Username:     "admin",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong-password",
			setupMock: func(m *MockAdminUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.AdminUser{
					Username:     "admin",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "admin123",
			setupMock: func(m *MockAdminUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			token, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, tt.username, claims.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// A wrong password and a nonexistent username must be indistinguishable to the
// caller.
func TestAuthService_Login_NoExistenceLeak(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), 10)

	mockRepo := new(MockAdminUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.AdminUser{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
	}, nil)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	_, wrongPassErr := service.Login(context.Background(), "admin", "nope")
	_, unknownUserErr := service.Login(context.Background(), "ghost", "admin123")

	assert.Equal(t, wrongPassErr, unknownUserErr)
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	mockRepo := new(MockAdminUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(nil, gorm.ErrInvalidDB)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	token, err := service.Login(context.Background(), "admin", "admin123")
	assert.Error(t, err)
	assert.NotEqual(t, errors.ErrInvalidCredentials, err)
	assert.Empty(t, token)
}

func TestAuthService_Bootstrap(t *testing.T) {
	mockRepo := new(MockAdminUserRepository)
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.AdminUser")).Return(nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	err := service.Bootstrap(context.Background(), "admin", "admin123")
	assert.NoError(t, err)

	upserted := mockRepo.Calls[0].Arguments.Get(1).(*model.AdminUser)
	assert.Equal(t, "admin", upserted.Username)
	assert.NotEqual(t, "admin123", upserted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(upserted.PasswordHash), []byte("admin123")))

	mockRepo.AssertExpectations(t)
}
