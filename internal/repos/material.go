package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/types"
)

type MaterialRepo interface {
	// BulkInsert writes materials in one statement with unique-constraint
	// collisions skipped. Returns the number of rows actually inserted,
	// which may be less than len(materials).
	BulkInsert(ctx context.Context, tx *gorm.DB, materials []*types.Material) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) (*types.Material, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Material, error)
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	repoLog := baseLog.With("repo", "MaterialRepo")
	return &materialRepo{db: db, log: repoLog}
}

func (r *materialRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *materialRepo) BulkInsert(ctx context.Context, tx *gorm.DB, materials []*types.Material) (int64, error) {
	if len(materials) == 0 {
		return 0, nil
	}

	result := r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&materials)
	if result.Error != nil {
		return 0, result.Error
	}

	r.log.Info("Bulk inserted materials", "requested", len(materials), "inserted", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *materialRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error) {
	var result types.Material
	err := r.conn(tx).WithContext(ctx).
		Preload("GradeLevel").
		Preload("LearningArea").
		Preload("Track").
		Preload("Component").
		Preload("Strand").
		Preload("Type").
		Preload("SubjectType").
		First(&result, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *materialRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) (*types.Material, error) {
	transaction := r.conn(tx).WithContext(ctx)

	result := transaction.Model(&types.Material{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, tx, id)
}

func (r *materialRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Material, error) {
	var results []*types.Material
	err := r.conn(tx).WithContext(ctx).
		Preload("GradeLevel").
		Preload("LearningArea").
		Preload("Track").
		Preload("Component").
		Preload("Strand").
		Preload("Type").
		Preload("SubjectType").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
