package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/repos"
	"github.com/lrmsph/lrms-backend/internal/types"
)

type MaterialService interface {
	// FetchAllMaterials lists every material with its taxonomy names joined
	// in for display; foreign-key ids are stripped from the view.
	FetchAllMaterials(ctx context.Context) ([]*MaterialView, error)
	// UpdateMaterialWithFile attaches an uploaded binary asset to an
	// existing material.
	UpdateMaterialWithFile(ctx context.Context, id uint, filePath, fileName string) (*MaterialView, error)
}

// MaterialView is the display shape of a material: resolved category names
// instead of foreign keys.
type MaterialView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Downloads     *int      `json:"downloads,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
	IntendedUsers *string   `json:"intended_users,omitempty"`
	Topic         *string   `json:"topic,omitempty"`
	Language      *string   `json:"language,omitempty"`
	Objective     *string   `json:"objective,omitempty"`
	EducationType *string   `json:"education_type,omitempty"`
	MaterialPath  *string   `json:"material_path,omitempty"`
	FileName      *string   `json:"file_name,omitempty"`
	GradeLevel    *string   `json:"grade_level,omitempty"`
	LearningArea  *string   `json:"learning_area,omitempty"`
	Track         *string   `json:"track,omitempty"`
	Component     *string   `json:"component,omitempty"`
	Strand        *string   `json:"strand,omitempty"`
	Type          *string   `json:"type,omitempty"`
	SubjectType   *string   `json:"subject_type,omitempty"`
}

type materialService struct {
	log          *logger.Logger
	materialRepo repos.MaterialRepo
}

func NewMaterialService(baseLog *logger.Logger, materialRepo repos.MaterialRepo) MaterialService {
	serviceLog := baseLog.With("service", "MaterialService")
	return &materialService{log: serviceLog, materialRepo: materialRepo}
}

func (s *materialService) FetchAllMaterials(ctx context.Context) ([]*MaterialView, error) {
	materials, err := s.materialRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch materials: %w", err)
	}

	views := make([]*MaterialView, 0, len(materials))
	for _, m := range materials {
		views = append(views, materialToView(m))
	}
	return views, nil
}

func (s *materialService) UpdateMaterialWithFile(ctx context.Context, id uint, filePath, fileName string) (*MaterialView, error) {
	updated, err := s.materialRepo.UpdateFields(ctx, nil, id, map[string]any{
		"material_path": filePath,
		"file_name":     fileName,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach file to material %d: %w", id, err)
	}

	s.log.Info("Attached file to material", "material_id", id, "file_name", fileName)
	return materialToView(updated), nil
}

func materialToView(m *types.Material) *MaterialView {
	view := &MaterialView{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Downloads:     m.Downloads,
		Rating:        m.Rating,
		UploadedAt:    m.UploadedAt,
		IntendedUsers: m.IntendedUsers,
		Topic:         m.Topic,
		Language:      m.Language,
		Objective:     m.Objective,
		EducationType: m.EducationType,
		MaterialPath:  m.MaterialPath,
		FileName:      m.FileName,
	}
	if m.GradeLevel != nil {
		view.GradeLevel = &m.GradeLevel.Name
	}
	if m.LearningArea != nil {
		view.LearningArea = &m.LearningArea.Name
	}
	if m.Track != nil {
		view.Track = &m.Track.Name
	}
	if m.Component != nil {
		view.Component = &m.Component.Name
	}
	if m.Strand != nil {
		view.Strand = &m.Strand.Name
	}
	if m.Type != nil {
		view.Type = &m.Type.Name
	}
	if m.SubjectType != nil {
		view.SubjectType = &m.SubjectType.Name
	}
	return view
}
