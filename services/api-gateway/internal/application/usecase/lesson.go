package usecase

import (
	"context"
	"fmt"
	"log"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

type LessonView struct {
	*domain.Lesson
	ResumeIndex int                   `json:"resume_index"`
	Progress    []domain.UserProgress `json:"progress,omitempty"`
}

type LessonUseCase struct {
	lessons  *repository.LessonRepository
	courses  *repository.CourseRepository
	progress *repository.ProgressRepository
}

func NewLessonUseCase(lr *repository.LessonRepository, cr *repository.CourseRepository, pr *repository.ProgressRepository) *LessonUseCase {
	return &LessonUseCase{lessons: lr, courses: cr, progress: pr}
}

func (uc *LessonUseCase) List(ctx context.Context, categoryID *uuid.UUID) ([]domain.Lesson, error) {
	return uc.lessons.List(ctx, categoryID)
}

func (uc *LessonUseCase) Mine(ctx context.Context, s Session) ([]domain.Lesson, error) {
	return uc.lessons.ListByTeacher(ctx, s.Wallet)
}

// Get loads a lesson and, for a connected wallet, where to resume it: the
// most recently touched section unless that one is already completed.
func (uc *LessonUseCase) Get(ctx context.Context, s Session, id uuid.UUID) (*LessonView, error) {
	lesson, err := uc.lessons.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &LessonView{Lesson: lesson}
	if s.Wallet == "" {
		return view, nil
	}

	rows, err := uc.progress.ListForLesson(ctx, s.Wallet, id)
	if err != nil {
		return nil, err
	}
	view.Progress = rows
	if n := len(rows); n > 0 && !rows[n-1].Completed {
		if _, idx, err := lesson.Section(rows[n-1].SectionID); err == nil {
			view.ResumeIndex = idx
		}
	}
	return view, nil
}

// CreateBatch validates every lesson before inserting any of them.
func (uc *LessonUseCase) CreateBatch(ctx context.Context, s Session, lessons []domain.Lesson) ([]domain.Lesson, error) {
	if s.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}
	if len(lessons) == 0 {
		return nil, fmt.Errorf("%w: no lessons given", domain.ErrInvalidLesson)
	}

	touched := map[uuid.UUID]bool{}
	for i := range lessons {
		l := &lessons[i]
		l.ID = uuid.Nil
		l.TeacherWallet = s.Wallet
		if err := l.Normalize(); err != nil {
			return nil, fmt.Errorf("lesson %d: %w", i+1, err)
		}
		if l.CourseID != nil && !touched[*l.CourseID] {
			if err := uc.ownCourse(ctx, s, *l.CourseID); err != nil {
				return nil, err
			}
			touched[*l.CourseID] = true
		}
	}

	if err := uc.lessons.CreateBatch(ctx, lessons); err != nil {
		return nil, err
	}
	for id := range touched {
		uc.courses.InvalidateCourse(ctx, id)
	}
	return lessons, nil
}

func (uc *LessonUseCase) Update(ctx context.Context, s Session, id uuid.UUID, in domain.Lesson) (*domain.Lesson, error) {
	existing, err := uc.owned(ctx, s, id)
	if err != nil {
		return nil, err
	}

	in.ID = id
	in.TeacherWallet = existing.TeacherWallet
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	if in.CourseID != nil && (existing.CourseID == nil || *existing.CourseID != *in.CourseID) {
		if err := uc.ownCourse(ctx, s, *in.CourseID); err != nil {
			return nil, err
		}
	}

	if err := uc.lessons.Update(ctx, &in); err != nil {
		return nil, err
	}
	keep := make([]string, 0, len(in.Sections))
	for _, sec := range in.Sections {
		keep = append(keep, sec.ID)
	}
	if err := uc.progress.PruneSections(ctx, id, keep); err != nil {
		log.Printf("failed to prune progress for lesson %s: %v", id, err)
	}
	uc.invalidate(ctx, existing.CourseID, in.CourseID)
	return uc.lessons.Get(ctx, id)
}

func (uc *LessonUseCase) Delete(ctx context.Context, s Session, id uuid.UUID) error {
	existing, err := uc.owned(ctx, s, id)
	if err != nil {
		return err
	}
	if err := uc.lessons.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, existing.CourseID)
	return nil
}

func (uc *LessonUseCase) owned(ctx context.Context, s Session, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := uc.lessons.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Role != domain.RoleTeacher || lesson.TeacherWallet != s.Wallet {
		return nil, domain.ErrForbidden
	}
	return lesson, nil
}

func (uc *LessonUseCase) ownCourse(ctx context.Context, s Session, courseID uuid.UUID) error {
	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.TeacherID != s.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *LessonUseCase) invalidate(ctx context.Context, ids ...*uuid.UUID) {
	for _, id := range ids {
		if id != nil {
			uc.courses.InvalidateCourse(ctx, *id)
		}
	}
}
