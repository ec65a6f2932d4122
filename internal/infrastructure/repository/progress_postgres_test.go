package repository_test

import (
	"context"
	"testing"
	"time"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"
	"learnplatform/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_UpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repository.NewProgressRepository(db)
	lessonID := uuid.New()

	require.NoError(t, repo.UpdatePosition(ctx, "w1", lessonID, "s1", 0))

	now := time.Now()
	answer := 2
	require.NoError(t, repo.Upsert(ctx, &domain.UserProgress{
		UserWallet:  "w1",
		LessonID:    lessonID,
		SectionID:   "s1",
		Completed:   true,
		QuizResults: []domain.QuizResult{{QuestionID: "q1", UserAnswer: &answer, IsCorrect: true, Score: 15}},
		CompletedAt: &now,
	}))

	var count int64
	require.NoError(t, db.Model(&domain.UserProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	row, err := repo.Get(ctx, "w1", lessonID, "s1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Completed)
	require.Len(t, row.QuizResults, 1)
	assert.Equal(t, 15.0, row.QuizResults[0].Score)
}

func TestProgressRepository_PositionDoesNotDowngrade(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProgressRepository(testutil.DB(t))
	lessonID := uuid.New()

	require.NoError(t, repo.Upsert(ctx, &domain.UserProgress{
		UserWallet: "w1", LessonID: lessonID, SectionID: "s1", Completed: true,
	}))
	require.NoError(t, repo.UpdatePosition(ctx, "w1", lessonID, "s1", 0))

	row, err := repo.Get(ctx, "w1", lessonID, "s1")
	require.NoError(t, err)
	assert.True(t, row.Completed)

	n, err := repo.CountCompleted(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	missing, err := repo.Get(ctx, "w2", lessonID, "s1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProgressRepository_CompletedAndPrune(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProgressRepository(testutil.DB(t))
	lessonA, lessonB := uuid.New(), uuid.New()

	for _, p := range []domain.UserProgress{
		{UserWallet: "w1", LessonID: lessonA, SectionID: "a1", Completed: true},
		{UserWallet: "w1", LessonID: lessonA, SectionID: "a2", Completed: true},
		{UserWallet: "w1", LessonID: lessonB, SectionID: "b1", Completed: true},
		{UserWallet: "w2", LessonID: lessonA, SectionID: "a1", Completed: true},
	} {
		require.NoError(t, repo.Upsert(ctx, &p))
	}
	require.NoError(t, repo.UpdatePosition(ctx, "w1", lessonA, "a3", 2))

	rows, err := repo.ListCompleted(ctx, "w1", []uuid.UUID{lessonA})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.ListCompleted(ctx, "w1", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, repo.PruneSections(ctx, lessonA, []string{"a2"}))
	rows, err = repo.ListCompleted(ctx, "w1", []uuid.UUID{lessonA, lessonB})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Contains(t, []string{"a2", "b1"}, row.SectionID)
	}
	gone, err := repo.Get(ctx, "w2", lessonA, "a1")
	require.NoError(t, err)
	assert.Nil(t, gone, "pruning applies to every wallet")
}

func TestEnrollmentRepository_EnrollIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEnrollmentRepository(testutil.DB(t))
	student, course := uuid.New(), uuid.New()

	first, err := repo.Enroll(ctx, student, course)
	require.NoError(t, err)
	second, err := repo.Enroll(ctx, student, course)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	require.NoError(t, repo.MarkCompleted(ctx, student, course))
	rows, err := repo.ListByStudent(ctx, student)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
}
