package usecases

import (
	"context"
	"strings"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/domain/course"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/biztime"
	"coursekit/internal/shared/logger"
)

type UpdateCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

func NewUpdateCourseUseCase(courseRepo course.Repository, logger logger.Interface) *UpdateCourseUseCase {
	return &UpdateCourseUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (uc *UpdateCourseUseCase) Execute(ctx context.Context, slug string, req dto.UpdateCourseRequest) (*course.Course, error) {
	c, err := uc.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load course for update", "slug", slug, "error", err)
		return nil, apperrors.NewInternalError("failed to update course")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewValidationError("course title is required")
		}
		c.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, apperrors.NewValidationError("course price cannot be negative")
		}
		c.PriceCents = *req.PriceCents
	}
	if req.Published != nil {
		if *req.Published {
			c.Publish()
		} else {
			c.Unpublish()
		}
	}
	if req.Lessons != nil {
		c.Lessons = nil
		for _, l := range *req.Lessons {
			if _, err := c.AddLesson(l.Slug, l.Title, l.Content); err != nil {
				return nil, apperrors.NewValidationError(err.Error())
			}
		}
	}
	c.UpdatedAt = biztime.NowUTC()

	if err := uc.courseRepo.Update(ctx, c); err != nil {
		if apperrors.GetAppError(err) != nil {
			return nil, err
		}
		uc.logger.Errorw("failed to update course", "slug", slug, "error", err)
		return nil, apperrors.NewInternalError("failed to update course")
	}

	uc.logger.Infow("course updated", "course_id", c.ID, "slug", c.Slug)
	return c, nil
}
