package usecases

import (
	"context"

	"coursekit/internal/application/course/dto"
	"coursekit/internal/domain/course"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// GetCourseUseCase serves a single course page with its lesson listing.
type GetCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

func NewGetCourseUseCase(courseRepo course.Repository, logger logger.Interface) *GetCourseUseCase {
	return &GetCourseUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Execute loads a course by slug. Unpublished courses are hidden unless
// includeDrafts is set; a draft answers the same not-found as a missing slug.
func (uc *GetCourseUseCase) Execute(ctx context.Context, slug string, includeDrafts bool) (*dto.CourseDetail, error) {
	c, err := uc.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		uc.logger.Errorw("failed to get course", "slug", slug, "error", err)
		return nil, apperrors.NewInternalError("failed to load course")
	}

	if !c.Published && !includeDrafts {
		return nil, apperrors.NewNotFoundError("course not found")
	}

	detail := dto.NewCourseDetail(c)
	return &detail, nil
}
