package usecase

import (
	"context"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

type EnrolledCourse struct {
	domain.Enrollment
	Title string `json:"title"`
}

type Profile struct {
	User              *domain.User     `json:"user"`
	Enrollments       []EnrolledCourse `json:"enrollments,omitempty"`
	CompletedSections int64            `json:"completed_sections"`
	Courses           []domain.Course  `json:"courses,omitempty"`
	Lessons           []domain.Lesson  `json:"lessons,omitempty"`
}

type ProfileUseCase struct {
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	enrollments *repository.EnrollmentRepository
	progress    *repository.ProgressRepository
}

func NewProfileUseCase(
	ur *repository.UserRepository,
	cr *repository.CourseRepository,
	lr *repository.LessonRepository,
	er *repository.EnrollmentRepository,
	pr *repository.ProgressRepository,
) *ProfileUseCase {
	return &ProfileUseCase{users: ur, courses: cr, lessons: lr, enrollments: er, progress: pr}
}

// Me is the role-specific dashboard of the signed-in user.
func (uc *ProfileUseCase) Me(ctx context.Context, s Session) (*Profile, error) {
	return uc.build(ctx, s.Wallet, s.Role, true)
}

// Public shows a wallet's profile only when it holds the requested role.
func (uc *ProfileUseCase) Public(ctx context.Context, wallet string, role domain.Role) (*Profile, error) {
	return uc.build(ctx, wallet, role, false)
}

func (uc *ProfileUseCase) build(ctx context.Context, wallet string, role domain.Role, private bool) (*Profile, error) {
	user, err := uc.users.GetByWalletAndRole(ctx, wallet, role)
	if err != nil {
		return nil, err
	}
	p := &Profile{User: user}

	switch role {
	case domain.RoleStudent:
		if p.CompletedSections, err = uc.progress.CountCompleted(ctx, wallet); err != nil {
			return nil, err
		}
		if private {
			if p.Enrollments, err = uc.enrolled(ctx, user.ID); err != nil {
				return nil, err
			}
		}
	case domain.RoleTeacher:
		courses, _, err := uc.courses.List(ctx, repository.CourseFilter{TeacherID: &user.ID, Limit: 100})
		if err != nil {
			return nil, err
		}
		p.Courses = courses
		if p.Lessons, err = uc.lessons.ListByTeacher(ctx, wallet); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (uc *ProfileUseCase) enrolled(ctx context.Context, studentID uuid.UUID) ([]EnrolledCourse, error) {
	rows, err := uc.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]EnrolledCourse, 0, len(rows))
	for _, e := range rows {
		title := ""
		if c, err := uc.courses.GetByID(ctx, e.CourseID); err == nil {
			title = c.Title
		}
		out = append(out, EnrolledCourse{Enrollment: e, Title: title})
	}
	return out, nil
}
