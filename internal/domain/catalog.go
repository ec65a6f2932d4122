package domain

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryInvalid = errors.New("category name and group are required")

type SubjectGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
}

type EducationLevel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
}

type CategoryType string

const (
	CategorySubject CategoryType = "subject"
	CategoryGrade   CategoryType = "grade"
)

type Category struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string       `gorm:"not null" json:"name"`
	Description      string       `json:"description"`
	Type             CategoryType `gorm:"size:16;default:'subject'" json:"type"`
	GroupID          *uuid.UUID   `gorm:"type:uuid;index" json:"group_id,omitempty"`
	EducationLevelID *uuid.UUID   `gorm:"type:uuid;index" json:"education_level_id,omitempty"`
}

func (Category) TableName() string {
	return "subject_categories"
}

func (g *SubjectGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (e *EducationLevel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
