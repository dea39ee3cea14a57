package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"feedbackhub/internal/model"
)

// AdminUserRepository defines admin account persistence operations.
type AdminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Upsert(ctx context.Context, user *model.AdminUser) error
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository builds a GORM-backed repository.
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the admin account or, when the username already exists,
// rewrites its password hash. Safe to run on every startup.
func (r *adminUserRepository) Upsert(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
	}).Create(user).Error
}
