package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("access denied")
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	TeacherID   uuid.UUID `gorm:"type:uuid;index" json:"teacher_id"`

	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:SET NULL;" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_course" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_course" json:"course_id"`
	Grade     string    `json:"grade,omitempty"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CourseCard is a course as listed on the home page, with its instructor's name.
type CourseCard struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	InsName     string    `json:"ins_name"`
}
