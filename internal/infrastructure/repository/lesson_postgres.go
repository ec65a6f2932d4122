package repository

import (
	"context"
	"errors"

	"learnplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// CreateBatch inserts every lesson or none of them.
func (r *LessonRepository) CreateBatch(ctx context.Context, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lessons).Error
}

func (r *LessonRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	res := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("id = ?", lesson.ID).
		Select("title", "description", "sections", "category_id", "course_id", "updated_at").
		Updates(lesson)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&domain.UserProgress{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Lesson{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrLessonNotFound
		}
		return nil
	})
}

// List returns lessons newest first, optionally narrowed to one category.
func (r *LessonRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	query := r.db.WithContext(ctx).Order("created_at desc")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	err := query.Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByTeacher(ctx context.Context, wallet string) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("teacher_wallet = ?", wallet).
		Order("created_at desc").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at asc").
		Find(&lessons).Error
	return lessons, err
}
