package repository

import (
	"context"

	"learnplatform/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Groups(ctx context.Context) ([]domain.SubjectGroup, error) {
	var groups []domain.SubjectGroup
	err := r.db.WithContext(ctx).Order("order_index asc").Find(&groups).Error
	return groups, err
}

func (r *CatalogRepository) Levels(ctx context.Context) ([]domain.EducationLevel, error) {
	var levels []domain.EducationLevel
	err := r.db.WithContext(ctx).Order("order_index asc").Find(&levels).Error
	return levels, err
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&cats).Error
	return cats, err
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CatalogRepository) CreateGroup(ctx context.Context, g *domain.SubjectGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *CatalogRepository) CreateLevel(ctx context.Context, l *domain.EducationLevel) error {
	return r.db.WithContext(ctx).Create(l).Error
}
