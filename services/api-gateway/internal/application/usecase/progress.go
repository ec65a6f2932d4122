package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/infrastructure/repository"
	"learnplatform/internal/quiz"

	"github.com/google/uuid"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionOutOfRange = errors.New("answer option out of range")
	ErrQuizSection      = errors.New("quiz sections are completed by submitting answers")
)

type QuizOutcome struct {
	Results   []domain.QuizResult `json:"results"`
	Total     float64             `json:"total"`
	NextIndex int                 `json:"next_index"`
	Finished  bool                `json:"finished"`
}

type ProgressUseCase struct {
	lessons     *repository.LessonRepository
	progress    *repository.ProgressRepository
	enrollments *repository.EnrollmentRepository
	attempts    *cache.AttemptStore
	now         func() time.Time
}

func NewProgressUseCase(
	lr *repository.LessonRepository,
	pr *repository.ProgressRepository,
	er *repository.EnrollmentRepository,
	as *cache.AttemptStore,
) *ProgressUseCase {
	return &ProgressUseCase{
		lessons:     lr,
		progress:    pr,
		enrollments: er,
		attempts:    as,
		now:         time.Now,
	}
}

func (uc *ProgressUseCase) section(ctx context.Context, lessonID uuid.UUID, sectionID string) (*domain.Lesson, *domain.Section, int, error) {
	lesson, err := uc.lessons.Get(ctx, lessonID)
	if err != nil {
		return nil, nil, 0, err
	}
	sec, idx, err := lesson.Section(sectionID)
	if err != nil {
		return nil, nil, 0, err
	}
	return lesson, sec, idx, nil
}

// SavePosition remembers the section the viewer is on.
func (uc *ProgressUseCase) SavePosition(ctx context.Context, s Session, lessonID uuid.UUID, sectionID string) error {
	_, _, idx, err := uc.section(ctx, lessonID, sectionID)
	if err != nil {
		return err
	}
	return uc.progress.UpdatePosition(ctx, s.Wallet, lessonID, sectionID, idx)
}

func (uc *ProgressUseCase) CompleteSection(ctx context.Context, s Session, lessonID uuid.UUID, sectionID string) (int, error) {
	lesson, sec, idx, err := uc.section(ctx, lessonID, sectionID)
	if err != nil {
		return 0, err
	}
	if sec.Type == domain.SectionQuiz {
		return 0, ErrQuizSection
	}

	now := uc.now()
	if err := uc.progress.Upsert(ctx, &domain.UserProgress{
		UserWallet:   s.Wallet,
		LessonID:     lessonID,
		SectionID:    sectionID,
		Completed:    true,
		LastPosition: idx,
		CompletedAt:  &now,
	}); err != nil {
		return 0, err
	}

	uc.checkCourseCompletion(ctx, s, lesson)
	return nextIndex(lesson, idx), nil
}

// Answer records an option for one question. The question's clock starts on
// its first answer.
func (uc *ProgressUseCase) Answer(ctx context.Context, s Session, lessonID uuid.UUID, sectionID, questionID string, option int) error {
	_, sec, _, err := uc.section(ctx, lessonID, sectionID)
	if err != nil {
		return err
	}
	if sec.Type != domain.SectionQuiz {
		return domain.ErrNotAQuiz
	}

	var q *domain.QuizQuestion
	for i := range sec.Quiz {
		if sec.Quiz[i].ID == questionID {
			q = &sec.Quiz[i]
			break
		}
	}
	if q == nil {
		return ErrQuestionNotFound
	}
	if option < 0 || option >= len(q.Options) {
		return ErrOptionOutOfRange
	}

	attempt, err := uc.attempts.Load(ctx, s.Wallet, lessonID, sectionID)
	if err != nil {
		return err
	}
	attempt.Select(questionID, option, uc.now())
	return uc.attempts.Save(ctx, s.Wallet, lessonID, sectionID, attempt)
}

// Submit grades the attempt and stores it as the section's single progress row.
func (uc *ProgressUseCase) Submit(ctx context.Context, s Session, lessonID uuid.UUID, sectionID string) (*QuizOutcome, error) {
	lesson, sec, idx, err := uc.section(ctx, lessonID, sectionID)
	if err != nil {
		return nil, err
	}
	if sec.Type != domain.SectionQuiz {
		return nil, domain.ErrNotAQuiz
	}

	attempt, err := uc.attempts.Load(ctx, s.Wallet, lessonID, sectionID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	results := attempt.Grade(sec.Quiz, now)
	if err := uc.progress.Upsert(ctx, &domain.UserProgress{
		UserWallet:   s.Wallet,
		LessonID:     lessonID,
		SectionID:    sectionID,
		Completed:    true,
		QuizResults:  results,
		LastPosition: idx,
		CompletedAt:  &now,
	}); err != nil {
		return nil, err
	}

	if err := uc.attempts.Clear(ctx, s.Wallet, lessonID, sectionID); err != nil {
		log.Printf("failed to clear quiz attempt %s/%s for %s: %v", lessonID, sectionID, s.Wallet, err)
	}
	uc.checkCourseCompletion(ctx, s, lesson)

	next := nextIndex(lesson, idx)
	return &QuizOutcome{
		Results:   results,
		Total:     quiz.Total(results),
		NextIndex: next,
		Finished:  next == idx,
	}, nil
}

func nextIndex(lesson *domain.Lesson, idx int) int {
	if idx+1 < len(lesson.Sections) {
		return idx + 1
	}
	return idx
}

// checkCourseCompletion marks the student's enrollment completed once every
// section of every lesson in the course is done. Failures only get logged.
func (uc *ProgressUseCase) checkCourseCompletion(ctx context.Context, s Session, lesson *domain.Lesson) {
	if lesson.CourseID == nil || s.Role != domain.RoleStudent {
		return
	}

	lessons, err := uc.lessons.ListByCourse(ctx, *lesson.CourseID)
	if err != nil {
		log.Printf("course completion check failed: %v", err)
		return
	}

	current := make(map[uuid.UUID]map[string]bool, len(lessons))
	ids := make([]uuid.UUID, 0, len(lessons))
	sections := 0
	for _, l := range lessons {
		set := make(map[string]bool, len(l.Sections))
		for _, sec := range l.Sections {
			set[sec.ID] = true
		}
		current[l.ID] = set
		sections += len(set)
		ids = append(ids, l.ID)
	}
	if sections == 0 {
		return
	}

	rows, err := uc.progress.ListCompleted(ctx, s.Wallet, ids)
	if err != nil {
		log.Printf("course completion check failed: %v", err)
		return
	}
	// Rows left behind by sections an edit removed do not count.
	done := 0
	for _, row := range rows {
		if current[row.LessonID][row.SectionID] {
			done++
		}
	}
	if done == sections {
		if err := uc.enrollments.MarkCompleted(ctx, s.UserID, *lesson.CourseID); err != nil {
			log.Printf("failed to mark enrollment completed: %v", err)
		}
	}
}

// SectionProgress returns the wallet's row for one section, or nil when the
// section has not been touched yet.
func (uc *ProgressUseCase) SectionProgress(ctx context.Context, s Session, lessonID uuid.UUID, sectionID string) (*domain.UserProgress, error) {
	if _, _, _, err := uc.section(ctx, lessonID, sectionID); err != nil {
		return nil, err
	}
	return uc.progress.Get(ctx, s.Wallet, lessonID, sectionID)
}
