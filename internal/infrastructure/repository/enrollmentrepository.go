package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursekit/internal/domain/enrollment"
	"coursekit/internal/infrastructure/persistence/mappers"
	"coursekit/internal/infrastructure/persistence/models"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// EnrollmentRepositoryImpl implements the enrollment.Repository interface
type EnrollmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EnrollmentMapper
	logger logger.Interface
}

// NewEnrollmentRepository creates a new enrollment repository instance
func NewEnrollmentRepository(db *gorm.DB, logger logger.Interface) enrollment.Repository {
	return &EnrollmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewEnrollmentMapper(),
		logger: logger,
	}
}

func (r *EnrollmentRepositoryImpl) Create(ctx context.Context, e *enrollment.Enrollment) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("enrollment already exists")
		}
		r.logger.Errorw("failed to create enrollment",
			"user_id", e.UserID,
			"course_id", e.CourseID,
			"error", err)
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	e.ID = model.ID

	r.logger.Infow("enrollment created",
		"id", model.ID,
		"user_id", model.UserID,
		"course_id", model.CourseID)
	return nil
}

func (r *EnrollmentRepositoryImpl) Update(ctx context.Context, e *enrollment.Enrollment) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"completed_at": model.CompletedAt,
			"metadata":     model.Metadata,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update enrollment", "id", e.ID, "error", result.Error)
		return fmt.Errorf("failed to update enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("enrollment not found")
	}

	return nil
}

func (r *EnrollmentRepositoryImpl) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*enrollment.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("enrollment not found")
		}
		r.logger.Errorw("failed to get enrollment",
			"user_id", userID,
			"course_id", courseID,
			"error", err)
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// HasActiveEnrollment runs on every lesson request, so it is a bare COUNT
// rather than a full row load.
func (r *EnrollmentRepositoryImpl) HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, string(enrollment.StatusActive)).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check enrollment",
			"user_id", userID,
			"course_id", courseID,
			"error", err)
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return count > 0, nil
}

func (r *EnrollmentRepositoryImpl) ListActiveByUser(ctx context.Context, userID uint) ([]*enrollment.Enrollment, error) {
	var enrollmentModels []models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(enrollment.StatusActive)).
		Order("id").
		Find(&enrollmentModels).Error; err != nil {
		r.logger.Errorw("failed to list enrollments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	enrollments := make([]*enrollment.Enrollment, len(enrollmentModels))
	for i := range enrollmentModels {
		e, err := r.mapper.ToDomain(&enrollmentModels[i])
		if err != nil {
			return nil, err
		}
		enrollments[i] = e
	}

	return enrollments, nil
}
