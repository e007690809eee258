package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// UserRepository is the single mutation point for a user's live refresh
// credential alongside the usual lookups.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create user",
			zap.String("email", user.Email),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// RecordRefreshToken overwrites the user's stored refresh credential with the
// latest issued value. A missing user is an error, never a silent no-op.
func (r *UserRepository) RecordRefreshToken(ctx context.Context, id uint, refreshToken string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", refreshToken)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to record refresh token",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearRefreshToken empties the stored refresh credential. Clearing an
// already-empty field succeeds.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", "")
	if result.Error != nil {
		logger.GetLogger().Error("Failed to clear refresh token",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
