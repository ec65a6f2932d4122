package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrNotAQuiz        = errors.New("section is not a quiz")
	ErrInvalidLesson   = errors.New("invalid lesson")
)

const (
	DefaultTimeLimit = 30 // seconds
	DefaultPoints    = 10
)

type SectionType string

const (
	SectionVideo   SectionType = "video"
	SectionContent SectionType = "content"
	SectionQuiz    SectionType = "quiz"
)

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	TimeLimit     int      `json:"timeLimit"`
	Points        int      `json:"points"`
}

type QuizResult struct {
	QuestionID string  `json:"questionId"`
	UserAnswer *int    `json:"userAnswer"`
	TimeSpent  float64 `json:"timeSpent"`
	IsCorrect  bool    `json:"isCorrect"`
	Score      float64 `json:"score"`
}

type Section struct {
	ID       string         `json:"id"`
	Type     SectionType    `json:"type"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	VideoURL string         `json:"videoUrl,omitempty"`
	Quiz     []QuizQuestion `json:"quiz,omitempty"`
	Order    int            `json:"order"`
}

type Lesson struct {
	ID            uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID      *uuid.UUID                   `gorm:"type:uuid;index" json:"course_id,omitempty"`
	CategoryID    *uuid.UUID                   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	TeacherWallet string                       `gorm:"index;not null" json:"teacher_wallet"`
	Title         string                       `gorm:"not null" json:"title"`
	Description   string                       `json:"description"`
	Sections      datatypes.JSONSlice[Section] `json:"sections"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Section returns the section with the given id and its position.
func (l *Lesson) Section(id string) (*Section, int, error) {
	for i := range l.Sections {
		if l.Sections[i].ID == id {
			return &l.Sections[i], i, nil
		}
	}
	return nil, -1, ErrSectionNotFound
}

// Normalize checks a lesson coming from an editor and fills the defaults the
// editor leaves out: ids, order, quiz time limit and points. Section ids and
// question ids must be unique within the lesson.
func (l *Lesson) Normalize() error {
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidLesson)
	}

	sectionIDs := make(map[string]bool, len(l.Sections))
	questionIDs := make(map[string]bool)
	for i := range l.Sections {
		s := &l.Sections[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if sectionIDs[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidLesson, s.ID)
		}
		sectionIDs[s.ID] = true
		s.Order = i

		switch s.Type {
		case SectionVideo:
			if strings.TrimSpace(s.VideoURL) == "" {
				return fmt.Errorf("%w: section %d needs a video url", ErrInvalidLesson, i+1)
			}
		case SectionContent:
		case SectionQuiz:
			if len(s.Quiz) == 0 {
				return fmt.Errorf("%w: quiz section %d has no questions", ErrInvalidLesson, i+1)
			}
			for j := range s.Quiz {
				if err := s.Quiz[j].normalize(); err != nil {
					return fmt.Errorf("%w: section %d question %d: %v", ErrInvalidLesson, i+1, j+1, err)
				}
				if questionIDs[s.Quiz[j].ID] {
					return fmt.Errorf("%w: duplicate question id %q", ErrInvalidLesson, s.Quiz[j].ID)
				}
				questionIDs[s.Quiz[j].ID] = true
			}
		default:
			return fmt.Errorf("%w: section %d has unknown type %q", ErrInvalidLesson, i+1, s.Type)
		}
	}
	return nil
}

func (q *QuizQuestion) normalize() error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) < 2 {
		return errors.New("at least two options are required")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return errors.New("correct answer is out of range")
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = DefaultTimeLimit
	}
	if q.Points <= 0 {
		q.Points = DefaultPoints
	}
	return nil
}

type UserProgress struct {
	UserWallet   string                          `gorm:"primaryKey;size:64" json:"user_wallet"`
	LessonID     uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	SectionID    string                          `gorm:"primaryKey;size:64" json:"section_id"`
	Completed    bool                            `gorm:"default:false" json:"completed"`
	QuizResults  datatypes.JSONSlice[QuizResult] `json:"quiz_results,omitempty"`
	LastPosition int                             `gorm:"default:0" json:"last_position"`
	CompletedAt  *time.Time                      `json:"completed_at,omitempty"`
	CreatedAt    time.Time                       `json:"-"`
	UpdatedAt    time.Time                       `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
