package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/types"
)

// TaxonomyRepo is read/write access to the seven flat classification tables.
// Creates are direct passthroughs to the store; callers decide what to do
// with constraint violations.
type TaxonomyRepo interface {
	CreateGradeLevel(ctx context.Context, tx *gorm.DB, entry *types.GradeLevel) error
	CreateLearningArea(ctx context.Context, tx *gorm.DB, entry *types.LearningArea) error
	CreateTrack(ctx context.Context, tx *gorm.DB, entry *types.Track) error
	CreateComponent(ctx context.Context, tx *gorm.DB, entry *types.Component) error
	CreateStrand(ctx context.Context, tx *gorm.DB, entry *types.Strand) error
	CreateType(ctx context.Context, tx *gorm.DB, entry *types.Type) error
	CreateSubjectType(ctx context.Context, tx *gorm.DB, entry *types.SubjectType) error

	ListGradeLevels(ctx context.Context, tx *gorm.DB) ([]types.GradeLevel, error)
	ListLearningAreas(ctx context.Context, tx *gorm.DB) ([]types.LearningArea, error)
	ListTracks(ctx context.Context, tx *gorm.DB) ([]types.Track, error)
	ListComponents(ctx context.Context, tx *gorm.DB) ([]types.Component, error)
	ListStrands(ctx context.Context, tx *gorm.DB) ([]types.Strand, error)
	ListTypes(ctx context.Context, tx *gorm.DB) ([]types.Type, error)
	ListSubjectTypes(ctx context.Context, tx *gorm.DB) ([]types.SubjectType, error)
}

type taxonomyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyRepo {
	repoLog := baseLog.With("repo", "TaxonomyRepo")
	return &taxonomyRepo{db: db, log: repoLog}
}

func (r *taxonomyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *taxonomyRepo) CreateGradeLevel(ctx context.Context, tx *gorm.DB, entry *types.GradeLevel) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateLearningArea(ctx context.Context, tx *gorm.DB, entry *types.LearningArea) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateTrack(ctx context.Context, tx *gorm.DB, entry *types.Track) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateComponent(ctx context.Context, tx *gorm.DB, entry *types.Component) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateStrand(ctx context.Context, tx *gorm.DB, entry *types.Strand) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateType(ctx context.Context, tx *gorm.DB, entry *types.Type) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) CreateSubjectType(ctx context.Context, tx *gorm.DB, entry *types.SubjectType) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *taxonomyRepo) ListGradeLevels(ctx context.Context, tx *gorm.DB) ([]types.GradeLevel, error) {
	var results []types.GradeLevel
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListLearningAreas(ctx context.Context, tx *gorm.DB) ([]types.LearningArea, error) {
	var results []types.LearningArea
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListTracks(ctx context.Context, tx *gorm.DB) ([]types.Track, error) {
	var results []types.Track
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListComponents(ctx context.Context, tx *gorm.DB) ([]types.Component, error) {
	var results []types.Component
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListStrands(ctx context.Context, tx *gorm.DB) ([]types.Strand, error) {
	var results []types.Strand
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListTypes(ctx context.Context, tx *gorm.DB) ([]types.Type, error) {
	var results []types.Type
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taxonomyRepo) ListSubjectTypes(ctx context.Context, tx *gorm.DB) ([]types.SubjectType, error) {
	var results []types.SubjectType
	if err := r.conn(tx).WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
