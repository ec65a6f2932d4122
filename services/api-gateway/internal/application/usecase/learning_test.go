package usecase

import (
	"context"
	"testing"
	"time"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/infrastructure/repository"
	"learnplatform/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type learning struct {
	courses  *CourseUseCase
	lessons  *LessonUseCase
	progress *ProgressUseCase
	profiles *ProfileUseCase
	users    *repository.UserRepository
	clock    time.Time
}

func newLearning(t *testing.T) *learning {
	t.Helper()
	db := testutil.DB(t)
	rdb, _ := testutil.Redis(t)

	users := repository.NewUserRepository(db)
	courses := repository.NewCourseRepository(db, rdb)
	lessons := repository.NewLessonRepository(db)
	progress := repository.NewProgressRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)

	l := &learning{
		courses:  NewCourseUseCase(courses, users, enrollments),
		lessons:  NewLessonUseCase(lessons, courses, progress),
		progress: NewProgressUseCase(lessons, progress, enrollments, cache.NewAttemptStore(rdb)),
		profiles: NewProfileUseCase(users, courses, lessons, enrollments, progress),
		users:    users,
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	l.progress.now = func() time.Time { return l.clock }
	return l
}

func (l *learning) account(t *testing.T, wallet, username string, role domain.Role) Session {
	t.Helper()
	u := &domain.User{WalletAddress: wallet, Username: username, FullName: username, Role: role, Signature: "s"}
	require.NoError(t, l.users.CreateAccount(context.Background(), u))
	return Session{State: StateReady, Wallet: wallet, UserID: u.ID, Role: role, Username: username}
}

func sampleLesson(courseID *uuid.UUID) domain.Lesson {
	return domain.Lesson{
		CourseID: courseID,
		Title:    "Fractions",
		Sections: []domain.Section{
			{Type: domain.SectionContent, Title: "Read"},
			{Type: domain.SectionQuiz, Title: "Check", Quiz: []domain.QuizQuestion{
				{ID: "q1", Question: "1/2+1/2", Options: []string{"1", "2", "0", "1/4"}, CorrectAnswer: 0, TimeLimit: 30, Points: 10},
				{ID: "q2", Question: "1/4+1/4", Options: []string{"1/2", "1", "2", "0"}, CorrectAnswer: 0},
			}},
		},
	}
}

func TestCourseOwnership(t *testing.T) {
	l := newLearning(t)
	ctx := context.Background()
	teacher := l.account(t, "wT", "tina", domain.RoleTeacher)
	other := l.account(t, "wO", "otto", domain.RoleTeacher)
	student := l.account(t, "wS", "sam", domain.RoleStudent)

	_, err := l.courses.Create(ctx, student, CourseInput{Title: "Nope"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = l.courses.Create(ctx, teacher, CourseInput{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	course, err := l.courses.Create(ctx, teacher, CourseInput{Title: "Math"})
	require.NoError(t, err)

	detail, err := l.courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "tina", detail.InsName)

	assert.ErrorIs(t, l.courses.Delete(ctx, other, course.ID), domain.ErrForbidden)

	_, err = l.courses.Enroll(ctx, teacher, course.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = l.courses.Enroll(ctx, student, course.ID)
	require.NoError(t, err)

	require.NoError(t, l.courses.Delete(ctx, teacher, course.ID))
	_, err = l.courses.Get(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestLessonCRUD(t *testing.T) {
	l := newLearning(t)
	ctx := context.Background()
	teacher := l.account(t, "wT", "tina", domain.RoleTeacher)
	other := l.account(t, "wO", "otto", domain.RoleTeacher)

	course, err := l.courses.Create(ctx, teacher, CourseInput{Title: "Math"})
	require.NoError(t, err)

	_, err = l.lessons.CreateBatch(ctx, other, []domain.Lesson{sampleLesson(&course.ID)})
	assert.ErrorIs(t, err, domain.ErrForbidden, "lessons can only be attached to your own course")

	bad := sampleLesson(nil)
	bad.Title = ""
	_, err = l.lessons.CreateBatch(ctx, teacher, []domain.Lesson{sampleLesson(nil), bad})
	assert.ErrorIs(t, err, domain.ErrInvalidLesson)
	all, err := l.lessons.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all, "a failed batch inserts nothing")

	created, err := l.lessons.CreateBatch(ctx, teacher, []domain.Lesson{sampleLesson(&course.ID), sampleLesson(&course.ID)})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "wT", created[0].TeacherWallet)
	assert.Equal(t, domain.DefaultTimeLimit, created[0].Sections[1].Quiz[1].TimeLimit)

	detail, err := l.courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Lessons, 2)

	update := created[0]
	update.Title = "Fractions II"
	_, err = l.lessons.Update(ctx, other, update.ID, update)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	updated, err := l.lessons.Update(ctx, teacher, update.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Fractions II", updated.Title)

	assert.ErrorIs(t, l.lessons.Delete(ctx, other, update.ID), domain.ErrForbidden)
	require.NoError(t, l.lessons.Delete(ctx, teacher, update.ID))
	_, err = l.lessons.Get(ctx, teacher, update.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)

	mine, err := l.lessons.Mine(ctx, teacher)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestQuizFlow(t *testing.T) {
	l := newLearning(t)
	ctx := context.Background()
	teacher := l.account(t, "wT", "tina", domain.RoleTeacher)
	student := l.account(t, "wS", "sam", domain.RoleStudent)

	course, err := l.courses.Create(ctx, teacher, CourseInput{Title: "Math"})
	require.NoError(t, err)
	_, err = l.courses.Enroll(ctx, student, course.ID)
	require.NoError(t, err)

	created, err := l.lessons.CreateBatch(ctx, teacher, []domain.Lesson{sampleLesson(&course.ID)})
	require.NoError(t, err)
	lesson := created[0]
	contentID, quizID := lesson.Sections[0].ID, lesson.Sections[1].ID

	view, err := l.lessons.Get(ctx, student, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ResumeIndex)

	require.NoError(t, l.progress.SavePosition(ctx, student, lesson.ID, quizID))
	view, err = l.lessons.Get(ctx, student, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ResumeIndex, "resume at the last section touched")

	_, err = l.progress.CompleteSection(ctx, student, lesson.ID, quizID)
	assert.ErrorIs(t, err, ErrQuizSection)
	assert.ErrorIs(t, l.progress.Answer(ctx, student, lesson.ID, contentID, "q1", 0), domain.ErrNotAQuiz)
	assert.ErrorIs(t, l.progress.Answer(ctx, student, lesson.ID, quizID, "q1", 9), ErrOptionOutOfRange)
	assert.ErrorIs(t, l.progress.Answer(ctx, student, lesson.ID, quizID, "nope", 0), ErrQuestionNotFound)

	require.NoError(t, l.progress.Answer(ctx, student, lesson.ID, quizID, "q1", 0))
	l.clock = l.clock.Add(3 * time.Second)
	require.NoError(t, l.progress.Answer(ctx, student, lesson.ID, quizID, "q2", 0))
	l.clock = l.clock.Add(3 * time.Second)

	next, err := l.progress.CompleteSection(ctx, student, lesson.ID, contentID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	outcome, err := l.progress.Submit(ctx, student, lesson.ID, quizID)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)
	// q1: 6s of 30s, q2: 3s of 30s
	assert.InDelta(t, 18.0, outcome.Results[0].Score, 1e-9)
	assert.InDelta(t, 19.0, outcome.Results[1].Score, 1e-9)
	assert.InDelta(t, 37.0, outcome.Total, 1e-9)
	assert.True(t, outcome.Finished)

	view, err = l.lessons.Get(ctx, student, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, view.Progress, 2)

	profile, err := l.profiles.Me(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.CompletedSections)
	require.Len(t, profile.Enrollments, 1)
	assert.True(t, profile.Enrollments[0].Completed, "all sections done completes the course")
	assert.Equal(t, "Math", profile.Enrollments[0].Title)

	// a resubmission without answers overwrites the same row
	outcome, err = l.progress.Submit(ctx, student, lesson.ID, quizID)
	require.NoError(t, err)
	assert.Zero(t, outcome.Total)
	view, err = l.lessons.Get(ctx, student, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, view.Progress, 2)
}

func TestPublicProfiles(t *testing.T) {
	l := newLearning(t)
	ctx := context.Background()
	teacher := l.account(t, "wT", "tina", domain.RoleTeacher)
	l.account(t, "wS", "sam", domain.RoleStudent)

	_, err := l.courses.Create(ctx, teacher, CourseInput{Title: "Math"})
	require.NoError(t, err)

	p, err := l.profiles.Public(ctx, "wT", domain.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, p.Courses, 1)

	_, err = l.profiles.Public(ctx, "wT", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	p, err = l.profiles.Public(ctx, "wS", domain.RoleStudent)
	require.NoError(t, err)
	assert.Nil(t, p.Enrollments)
}

func TestCourseCompletionFollowsEditedSections(t *testing.T) {
	l := newLearning(t)
	ctx := context.Background()
	teacher := l.account(t, "wT", "tina", domain.RoleTeacher)
	student := l.account(t, "wS", "sam", domain.RoleStudent)

	course, err := l.courses.Create(ctx, teacher, CourseInput{Title: "Math"})
	require.NoError(t, err)
	_, err = l.courses.Enroll(ctx, student, course.ID)
	require.NoError(t, err)

	content := func(id string) domain.Section {
		return domain.Section{ID: id, Type: domain.SectionContent, Title: id}
	}
	created, err := l.lessons.CreateBatch(ctx, teacher, []domain.Lesson{{
		CourseID: &course.ID,
		Title:    "Shapes",
		Sections: []domain.Section{content("a"), content("b")},
	}})
	require.NoError(t, err)
	lesson := created[0]

	_, err = l.progress.CompleteSection(ctx, student, lesson.ID, "a")
	require.NoError(t, err)

	edit := lesson
	edit.Sections = []domain.Section{content("c"), content("d")}
	_, err = l.lessons.Update(ctx, teacher, lesson.ID, edit)
	require.NoError(t, err)

	row, err := l.progress.SectionProgress(ctx, student, lesson.ID, "c")
	require.NoError(t, err)
	assert.Nil(t, row)
	_, err = l.progress.SectionProgress(ctx, student, lesson.ID, "a")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)

	_, err = l.progress.CompleteSection(ctx, student, lesson.ID, "c")
	require.NoError(t, err)

	profile, err := l.profiles.Me(ctx, student)
	require.NoError(t, err)
	require.Len(t, profile.Enrollments, 1)
	assert.False(t, profile.Enrollments[0].Completed, "d is still unfinished")
	assert.Equal(t, int64(1), profile.CompletedSections, "progress on removed sections is dropped")

	_, err = l.progress.CompleteSection(ctx, student, lesson.ID, "d")
	require.NoError(t, err)

	row, err = l.progress.SectionProgress(ctx, student, lesson.ID, "d")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Completed)

	profile, err = l.profiles.Me(ctx, student)
	require.NoError(t, err)
	assert.True(t, profile.Enrollments[0].Completed)
}
