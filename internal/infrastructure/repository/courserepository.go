package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursekit/internal/domain/course"
	"coursekit/internal/infrastructure/persistence/mappers"
	"coursekit/internal/infrastructure/persistence/models"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// CourseRepositoryImpl implements the course.Repository interface
type CourseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CourseMapper
	logger logger.Interface
}

// NewCourseRepository creates a new course repository instance
func NewCourseRepository(db *gorm.DB, logger logger.Interface) course.Repository {
	return &CourseRepositoryImpl{
		db:     db,
		mapper: mappers.NewCourseMapper(),
		logger: logger,
	}
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, c *course.Course) error {
	model := r.mapper.ToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("course slug already in use")
		}
		r.logger.Errorw("failed to create course", "slug", c.Slug, "error", err)
		return fmt.Errorf("failed to create course: %w", err)
	}

	c.ID = model.ID
	for i := range model.Lessons {
		c.Lessons[i].ID = model.Lessons[i].ID
		c.Lessons[i].CourseID = model.ID
	}

	r.logger.Infow("course created", "id", model.ID, "slug", model.Slug)
	return nil
}

// Update persists the course row and replaces its lessons in one
// transaction. Lesson sets are small enough that replace-on-write beats
// diffing.
func (r *CourseRepositoryImpl) Update(ctx context.Context, c *course.Course) error {
	model := r.mapper.ToModel(c)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CourseModel{}).
			Where("id = ?", c.ID).
			Updates(map[string]interface{}{
				"slug":        model.Slug,
				"title":       model.Title,
				"description": model.Description,
				"price_cents": model.PriceCents,
				"published":   model.Published,
				"updated_at":  model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("course not found")
		}

		if err := tx.Where("course_id = ?", c.ID).Delete(&models.LessonModel{}).Error; err != nil {
			return err
		}
		for i := range model.Lessons {
			model.Lessons[i].ID = 0
			model.Lessons[i].CourseID = c.ID
			if err := tx.Create(&model.Lessons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) != nil {
			return err
		}
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("course slug already in use")
		}
		r.logger.Errorw("failed to update course", "id", c.ID, "error", err)
		return fmt.Errorf("failed to update course: %w", err)
	}

	for i := range model.Lessons {
		c.Lessons[i].ID = model.Lessons[i].ID
		c.Lessons[i].CourseID = c.ID
	}

	return nil
}

func (r *CourseRepositoryImpl) GetByID(ctx context.Context, id uint) (*course.Course, error) {
	var model models.CourseModel
	if err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		r.logger.Errorw("failed to get course", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *CourseRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*course.Course, error) {
	var model models.CourseModel
	if err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("slug = ?", slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		r.logger.Errorw("failed to get course by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *CourseRepositoryImpl) List(ctx context.Context, publishedOnly bool) ([]*course.Course, error) {
	query := r.db.WithContext(ctx).Order("id")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var courseModels []models.CourseModel
	if err := query.Find(&courseModels).Error; err != nil {
		r.logger.Errorw("failed to list courses", "error", err)
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]*course.Course, len(courseModels))
	for i := range courseModels {
		courses[i] = r.mapper.ToDomain(&courseModels[i])
	}

	return courses, nil
}
