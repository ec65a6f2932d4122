package usecase

import (
	"context"
	"strings"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

type Catalog struct {
	Groups     []domain.SubjectGroup   `json:"groups"`
	Levels     []domain.EducationLevel `json:"levels"`
	Categories []domain.Category       `json:"categories"`
}

type CatalogUseCase struct {
	catalog *repository.CatalogRepository
}

func NewCatalogUseCase(cr *repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: cr}
}

func (uc *CatalogUseCase) Get(ctx context.Context) (*Catalog, error) {
	groups, err := uc.catalog.Groups(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := uc.catalog.Levels(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := uc.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &Catalog{Groups: groups, Levels: levels, Categories: cats}, nil
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, s Session, c domain.Category) (*domain.Category, error) {
	if s.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || c.GroupID == nil {
		return nil, domain.ErrCategoryInvalid
	}
	if c.Type == "" {
		c.Type = domain.CategorySubject
	}
	if c.Type != domain.CategorySubject && c.Type != domain.CategoryGrade {
		return nil, domain.ErrCategoryInvalid
	}
	c.ID = uuid.Nil
	if err := uc.catalog.CreateCategory(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
