package services

import (
	"context"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/repos"
	"github.com/lrmsph/lrms-backend/internal/types"
)

// TaxonomyService creates reference entries. Store errors (typically
// constraint violations) are folded into the Result instead of propagating;
// nothing past this boundary sees a raw repo error.
type TaxonomyService interface {
	CreateGradeLevel(ctx context.Context, entry *types.GradeLevel) Result
	CreateLearningArea(ctx context.Context, entry *types.LearningArea) Result
	CreateTrack(ctx context.Context, entry *types.Track) Result
	CreateComponent(ctx context.Context, entry *types.Component) Result
	CreateStrand(ctx context.Context, entry *types.Strand) Result
	CreateType(ctx context.Context, entry *types.Type) Result
	CreateSubjectType(ctx context.Context, entry *types.SubjectType) Result
}

type taxonomyService struct {
	log          *logger.Logger
	taxonomyRepo repos.TaxonomyRepo
}

func NewTaxonomyService(baseLog *logger.Logger, taxonomyRepo repos.TaxonomyRepo) TaxonomyService {
	serviceLog := baseLog.With("service", "TaxonomyService")
	return &taxonomyService{log: serviceLog, taxonomyRepo: taxonomyRepo}
}

func (s *taxonomyService) created(kind string, entry any, err error) Result {
	if err != nil {
		s.log.Error("Failed to create taxonomy entry", "kind", kind, "error", err)
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, Data: entry}
}

func (s *taxonomyService) CreateGradeLevel(ctx context.Context, entry *types.GradeLevel) Result {
	return s.created("grade_level", entry, s.taxonomyRepo.CreateGradeLevel(ctx, nil, entry))
}

func (s *taxonomyService) CreateLearningArea(ctx context.Context, entry *types.LearningArea) Result {
	return s.created("learning_area", entry, s.taxonomyRepo.CreateLearningArea(ctx, nil, entry))
}

func (s *taxonomyService) CreateTrack(ctx context.Context, entry *types.Track) Result {
	return s.created("track", entry, s.taxonomyRepo.CreateTrack(ctx, nil, entry))
}

func (s *taxonomyService) CreateComponent(ctx context.Context, entry *types.Component) Result {
	return s.created("component", entry, s.taxonomyRepo.CreateComponent(ctx, nil, entry))
}

func (s *taxonomyService) CreateStrand(ctx context.Context, entry *types.Strand) Result {
	return s.created("strand", entry, s.taxonomyRepo.CreateStrand(ctx, nil, entry))
}

func (s *taxonomyService) CreateType(ctx context.Context, entry *types.Type) Result {
	return s.created("type", entry, s.taxonomyRepo.CreateType(ctx, nil, entry))
}

func (s *taxonomyService) CreateSubjectType(ctx context.Context, entry *types.SubjectType) Result {
	return s.created("subject_type", entry, s.taxonomyRepo.CreateSubjectType(ctx, nil, entry))
}
