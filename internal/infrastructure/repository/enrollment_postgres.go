package repository

import (
	"context"

	"learnplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll is idempotent: enrolling twice returns the existing row.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*domain.Enrollment, error) {
	e := domain.Enrollment{StudentID: studentID, CourseID: courseID}
	err := r.db.WithContext(ctx).
		Where(domain.Enrollment{StudentID: studentID, CourseID: courseID}).
		FirstOrCreate(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Enrollment, error) {
	var rows []domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *EnrollmentRepository) MarkCompleted(ctx context.Context, studentID, courseID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Update("completed", true).Error
}
