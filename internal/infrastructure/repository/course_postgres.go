package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"learnplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	courseListTTL   = 10 * time.Minute
	courseDetailTTL = time.Hour
	courseListKeys  = "courses:list:*"
)

type CourseFilter struct {
	Search    string
	TeacherID *uuid.UUID
	Limit     int
	Offset    int
}

func (f CourseFilter) cacheKey() string {
	teacher := ""
	if f.TeacherID != nil {
		teacher = f.TeacherID.String()
	}
	return fmt.Sprintf("courses:list:%s:%s:%d:%d", strings.ToLower(f.Search), teacher, f.Limit, f.Offset)
}

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewCourseRepository caches list and detail reads in rdb; a nil rdb disables caching.
func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

type cachedCourseList struct {
	Courses []domain.Course
	Total   int64
}

// List reads through the Redis cache; a cache miss or a broken entry falls back to the database.
func (r *CourseRepository) List(ctx context.Context, f CourseFilter) ([]domain.Course, int64, error) {
	key := f.cacheKey()

	var cached cachedCourseList
	if r.cacheGet(ctx, key, &cached) {
		return cached.Courses, cached.Total, nil
	}

	var courses []domain.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if f.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.TeacherID != nil {
		query = query.Where("teacher_id = ?", *f.TeacherID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(f.Limit).Offset(f.Offset).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	r.cacheSet(ctx, key, cachedCourseList{Courses: courses, Total: total}, courseListTTL)

	return courses, total, nil
}

// GetWithLessons returns a course and its lessons oldest first, cached for an hour.
func (r *CourseRepository) GetWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := "course:detail:" + id.String()

	var c domain.Course
	if r.cacheGet(ctx, key, &c) {
		return &c, nil
	}

	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	r.cacheSet(ctx, key, course, courseDetailTTL)
	return &course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Featured lists every course with its instructor's display name, newest first.
func (r *CourseRepository) Featured(ctx context.Context) ([]domain.CourseCard, error) {
	var cards []domain.CourseCard
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Select("courses.id, courses.title, courses.description, courses.thumbnail, COALESCE(instructors_list.ins_name, '') AS ins_name").
		Joins("LEFT JOIN instructors_list ON instructors_list.user_id = courses.teacher_id").
		Order("courses.created_at desc").
		Scan(&cards).Error
	return cards, err
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	r.invalidateLists(ctx)
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&domain.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Lesson{}).Where("course_id = ?", id).Update("course_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Course{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	r.InvalidateCourse(ctx, id)
	r.invalidateLists(ctx)
	return nil
}

// InvalidateCourse drops the cached detail view, e.g. after one of its lessons changed.
func (r *CourseRepository) InvalidateCourse(ctx context.Context, id uuid.UUID) {
	if r.rdb == nil {
		return
	}
	r.rdb.Del(ctx, "course:detail:"+id.String())
}

func (r *CourseRepository) cacheGet(ctx context.Context, key string, dst any) bool {
	if r.rdb == nil {
		return false
	}
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (r *CourseRepository) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if r.rdb == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		r.rdb.Set(ctx, key, data, ttl)
	}
}

func (r *CourseRepository) invalidateLists(ctx context.Context) {
	if r.rdb == nil {
		return
	}
	iter := r.rdb.Scan(ctx, 0, courseListKeys, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("course cache scan failed: %v", err)
		return
	}
	if len(keys) > 0 {
		r.rdb.Del(ctx, keys...)
	}
}
