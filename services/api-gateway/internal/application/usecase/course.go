package usecase

import (
	"context"
	"errors"
	"strings"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

var ErrTitleRequired = errors.New("title is required")

type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type CourseDetail struct {
	*domain.Course
	InsName string `json:"ins_name"`
}

type CourseUseCase struct {
	courses     *repository.CourseRepository
	users       *repository.UserRepository
	enrollments *repository.EnrollmentRepository
}

func NewCourseUseCase(cr *repository.CourseRepository, ur *repository.UserRepository, er *repository.EnrollmentRepository) *CourseUseCase {
	return &CourseUseCase{courses: cr, users: ur, enrollments: er}
}

func (uc *CourseUseCase) List(ctx context.Context, f repository.CourseFilter) ([]domain.Course, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.courses.List(ctx, f)
}

func (uc *CourseUseCase) Get(ctx context.Context, id uuid.UUID) (*CourseDetail, error) {
	course, err := uc.courses.GetWithLessons(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := uc.users.InstructorNames(ctx, []uuid.UUID{course.TeacherID})
	if err != nil {
		return nil, err
	}
	return &CourseDetail{Course: course, InsName: names[course.TeacherID]}, nil
}

func (uc *CourseUseCase) Create(ctx context.Context, s Session, in CourseInput) (*domain.Course, error) {
	if s.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	course := &domain.Course{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		TeacherID:   s.UserID,
	}
	if err := uc.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) Delete(ctx context.Context, s Session, id uuid.UUID) error {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.TeacherID != s.UserID {
		return domain.ErrForbidden
	}
	return uc.courses.Delete(ctx, id)
}

func (uc *CourseUseCase) Enroll(ctx context.Context, s Session, id uuid.UUID) (*domain.Enrollment, error) {
	if s.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.courses.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.enrollments.Enroll(ctx, s.UserID, id)
}
