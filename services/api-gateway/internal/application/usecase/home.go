package usecase

import (
	"context"

	"learnplatform/internal/domain"
)

type Home struct {
	Username string              `json:"username,omitempty"`
	Courses  []domain.CourseCard `json:"courses"`
}

type HomeUseCase struct {
	procs Procedures
}

func NewHomeUseCase(p Procedures) *HomeUseCase {
	return &HomeUseCase{procs: p}
}

func (uc *HomeUseCase) Get(ctx context.Context, s Session) (*Home, error) {
	cards, err := uc.procs.RelativeCourses(ctx)
	if err != nil {
		return nil, err
	}
	return &Home{Username: s.Username, Courses: cards}, nil
}
