package repository

import (
	"context"
	"errors"

	"learnplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

var progressKey = []clause.Column{{Name: "user_wallet"}, {Name: "lesson_id"}, {Name: "section_id"}}

// Upsert writes the full row for one (wallet, lesson, section).
func (r *ProgressRepository) Upsert(ctx context.Context, p *domain.UserProgress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   progressKey,
		DoUpdates: clause.AssignmentColumns([]string{"completed", "quiz_results", "last_position", "completed_at", "updated_at"}),
	}).Create(p).Error
}

// UpdatePosition records where the viewer is without touching completion.
func (r *ProgressRepository) UpdatePosition(ctx context.Context, wallet string, lessonID uuid.UUID, sectionID string, position int) error {
	row := &domain.UserProgress{
		UserWallet:   wallet,
		LessonID:     lessonID,
		SectionID:    sectionID,
		LastPosition: position,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   progressKey,
		DoUpdates: clause.AssignmentColumns([]string{"last_position", "updated_at"}),
	}).Create(row).Error
}

// ListForLesson returns the wallet's rows for a lesson, most recently touched last.
func (r *ProgressRepository) ListForLesson(ctx context.Context, wallet string, lessonID uuid.UUID) ([]domain.UserProgress, error) {
	var rows []domain.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_wallet = ? AND lesson_id = ?", wallet, lessonID).
		Order("updated_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) Get(ctx context.Context, wallet string, lessonID uuid.UUID, sectionID string) (*domain.UserProgress, error) {
	var row domain.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_wallet = ? AND lesson_id = ? AND section_id = ?", wallet, lessonID, sectionID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CountCompleted counts the wallet's completed sections across all lessons.
func (r *ProgressRepository) CountCompleted(ctx context.Context, wallet string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.UserProgress{}).
		Where("user_wallet = ? AND completed = ?", wallet, true).
		Count(&n).Error
	return n, err
}

// ListCompleted returns the wallet's completed rows for the given lessons.
func (r *ProgressRepository) ListCompleted(ctx context.Context, wallet string, lessonIDs []uuid.UUID) ([]domain.UserProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var rows []domain.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_wallet = ? AND completed = ? AND lesson_id IN ?", wallet, true, lessonIDs).
		Find(&rows).Error
	return rows, err
}

// PruneSections drops every wallet's rows for sections a lesson no longer has.
func (r *ProgressRepository) PruneSections(ctx context.Context, lessonID uuid.UUID, keep []string) error {
	query := r.db.WithContext(ctx).Where("lesson_id = ?", lessonID)
	if len(keep) > 0 {
		query = query.Where("section_id NOT IN ?", keep)
	}
	return query.Delete(&domain.UserProgress{}).Error
}
