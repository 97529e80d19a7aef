package usecases

import (
	"context"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/domain/course"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type CreateCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

func NewCreateCourseUseCase(courseRepo course.Repository, logger logger.Interface) *CreateCourseUseCase {
	return &CreateCourseUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (uc *CreateCourseUseCase) Execute(ctx context.Context, req dto.CreateCourseRequest) (*course.Course, error) {
	c, err := course.NewCourse(req.Slug, req.Title, req.Description, req.PriceCents)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	for _, l := range req.Lessons {
		if _, err := c.AddLesson(l.Slug, l.Title, l.Content); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if req.Published {
		c.Publish()
	}

	if err := uc.courseRepo.Create(ctx, c); err != nil {
		if apperrors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create course", "slug", req.Slug, "error", err)
		return nil, apperrors.NewInternalError("failed to create course")
	}

	uc.logger.Infow("course created", "course_id", c.ID, "slug", c.Slug)
	return c, nil
}
