package types

import (
	"time"
)

// Material is one catalogued learning resource. Every taxonomy reference is
// nullable: a material whose categorization could not be resolved is stored
// with the foreign key left empty, not rejected.
type Material struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null;column:title;uniqueIndex:idx_materials_title_uploaded_at" json:"title"`
	Description   *string    `gorm:"column:description" json:"description,omitempty"`
	Downloads     *int       `gorm:"column:downloads" json:"downloads,omitempty"`
	Rating        *float64   `gorm:"column:rating" json:"rating,omitempty"`
	UploadedAt    time.Time  `gorm:"not null;column:uploaded_at;uniqueIndex:idx_materials_title_uploaded_at" json:"uploaded_at"`
	IntendedUsers *string    `gorm:"column:intended_users" json:"intended_users,omitempty"`
	Topic         *string    `gorm:"column:topic" json:"topic,omitempty"`
	Language      *string    `gorm:"column:language" json:"language,omitempty"`
	Objective     *string    `gorm:"column:objective" json:"objective,omitempty"`
	EducationType *string    `gorm:"column:education_type" json:"education_type,omitempty"`
	MaterialPath  *string    `gorm:"column:material_path" json:"material_path,omitempty"`
	FileName      *string    `gorm:"column:file_name" json:"file_name,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`

	GradeLevelID   *uint `gorm:"column:grade_level_id" json:"grade_level_id,omitempty"`
	LearningAreaID *uint `gorm:"column:learning_area_id" json:"learning_area_id,omitempty"`
	TrackID        *uint `gorm:"column:track_id" json:"track_id,omitempty"`
	ComponentID    *uint `gorm:"column:component_id" json:"component_id,omitempty"`
	StrandID       *uint `gorm:"column:strand_id" json:"strand_id,omitempty"`
	TypeID         *uint `gorm:"column:type_id" json:"type_id,omitempty"`
	SubjectTypeID  *uint `gorm:"column:subject_type_id" json:"subject_type_id,omitempty"`

	GradeLevel   *GradeLevel   `gorm:"foreignKey:GradeLevelID" json:"grade_level,omitempty"`
	LearningArea *LearningArea `gorm:"foreignKey:LearningAreaID" json:"learning_area,omitempty"`
	Track        *Track        `gorm:"foreignKey:TrackID" json:"track,omitempty"`
	Component    *Component    `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
	Strand       *Strand       `gorm:"foreignKey:StrandID" json:"strand,omitempty"`
	Type         *Type         `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	SubjectType  *SubjectType  `gorm:"foreignKey:SubjectTypeID" json:"subject_type,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}
