package usecases

import (
	"context"

	"coursekit/internal/application/access"
	"coursekit/internal/application/course/dto"
	"coursekit/internal/domain/course"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/services/markdown"
)

type GetLessonCommand struct {
	UserID     uint
	CourseSlug string
	LessonSlug string
}

// GetLessonUseCase serves rendered lesson content to enrolled students. This
// is the protected path everything else exists to guard.
type GetLessonUseCase struct {
	courseRepo course.Repository
	resolver   *access.Resolver
	renderer   markdown.Service
	logger     logger.Interface
}

func NewGetLessonUseCase(
	courseRepo course.Repository,
	resolver *access.Resolver,
	renderer markdown.Service,
	logger logger.Interface,
) *GetLessonUseCase {
	return &GetLessonUseCase{
		courseRepo: courseRepo,
		resolver:   resolver,
		renderer:   renderer,
		logger:     logger,
	}
}

// Execute checks access and renders the lesson markdown to sanitized HTML.
// A denial comes back as a forbidden error carrying the resolver's reason.
func (uc *GetLessonUseCase) Execute(ctx context.Context, cmd GetLessonCommand) (*dto.LessonContent, error) {
	result := uc.resolver.CheckAccessBySlug(ctx, cmd.UserID, cmd.CourseSlug)
	if !result.HasAccess {
		if result.Reason == "Course not found" {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		return nil, apperrors.NewForbiddenError(result.Reason)
	}

	c, err := uc.courseRepo.GetBySlug(ctx, cmd.CourseSlug)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		uc.logger.Errorw("failed to get course for lesson", "slug", cmd.CourseSlug, "error", err)
		return nil, apperrors.NewInternalError("failed to load lesson")
	}

	lesson := c.FindLesson(cmd.LessonSlug)
	if lesson == nil {
		return nil, apperrors.NewNotFoundError("lesson not found")
	}

	html, err := uc.renderer.ToHTMLSanitized(lesson.ContentMD)
	if err != nil {
		uc.logger.Errorw("failed to render lesson",
			"course", cmd.CourseSlug, "lesson", cmd.LessonSlug, "error", err)
		return nil, apperrors.NewInternalError("failed to render lesson")
	}

	return &dto.LessonContent{
		CourseSlug:  c.Slug,
		CourseTitle: c.Title,
		Slug:        lesson.Slug,
		Title:       lesson.Title,
		Position:    lesson.Position,
		HTML:        html,
	}, nil
}
