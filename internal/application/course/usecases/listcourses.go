package usecases

import (
	"context"

	"coursekit/internal/application/course/dto"
	"coursekit/internal/domain/course"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// ListCoursesUseCase serves the public catalog.
type ListCoursesUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

func NewListCoursesUseCase(courseRepo course.Repository, logger logger.Interface) *ListCoursesUseCase {
	return &ListCoursesUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Execute lists courses. Drafts are only included when includeDrafts is set,
// which the handlers reserve for admins.
func (uc *ListCoursesUseCase) Execute(ctx context.Context, includeDrafts bool) ([]dto.CourseSummary, error) {
	courses, err := uc.courseRepo.List(ctx, !includeDrafts)
	if err != nil {
		uc.logger.Errorw("failed to list courses", "error", err)
		return nil, apperrors.NewInternalError("failed to load courses")
	}

	summaries := make([]dto.CourseSummary, len(courses))
	for i, c := range courses {
		summaries[i] = dto.NewCourseSummary(c)
	}
	return summaries, nil
}
