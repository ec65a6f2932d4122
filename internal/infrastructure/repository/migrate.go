package repository

import (
	"learnplatform/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates every table both services read and write.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Student{},
		&domain.Instructor{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Enrollment{},
		&domain.UserProgress{},
		&domain.SubjectGroup{},
		&domain.EducationLevel{},
		&domain.Category{},
	)
}
