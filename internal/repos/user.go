package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/types"
)

type UserRepo interface {
	// Create persists the user together with its nested profile.
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error)
	// GetByEmail returns (nil, nil) when no account matches.
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	UpdateProfileFields(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]any) error
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, digest string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	if err := r.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error) {
	var result types.User
	err := r.conn(tx).WithContext(ctx).
		Preload("Profile").
		First(&result, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var result types.User
	err := r.conn(tx).WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	var results []*types.User
	err := r.conn(tx).WithContext(ctx).
		Preload("Profile").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := r.conn(tx).WithContext(ctx)
	if err := transaction.Where("user_id = ?", id).Delete(&types.Profile{}).Error; err != nil {
		return err
	}
	result := transaction.Delete(&types.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) UpdateProfileFields(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.conn(tx).WithContext(ctx).
		Model(&types.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, digest string) error {
	result := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": digest, "is_changed": true})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
