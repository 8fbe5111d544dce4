package types

// The seven classification dimensions used to categorize materials. Flat
// reference tables; name is the natural key used during spreadsheet
// resolution.

type GradeLevel struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (GradeLevel) TableName() string {
	return "grade_levels"
}

type LearningArea struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (LearningArea) TableName() string {
	return "learning_areas"
}

type Track struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (Track) TableName() string {
	return "tracks"
}

type Component struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (Component) TableName() string {
	return "components"
}

type Strand struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (Strand) TableName() string {
	return "strands"
}

type Type struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (Type) TableName() string {
	return "types"
}

type SubjectType struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
}

func (SubjectType) TableName() string {
	return "subject_types"
}
