package usecases

import (
	"context"

	"coursekit/internal/domain/enrollment"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type CompleteCourseCommand struct {
	UserID   uint
	CourseID uint
}

// CompleteCourseUseCase marks a student's enrollment completed. Completion is
// a one-way stamp and does not touch access.
type CompleteCourseUseCase struct {
	enrollmentRepo enrollment.Repository
	logger         logger.Interface
}

func NewCompleteCourseUseCase(enrollmentRepo enrollment.Repository, logger logger.Interface) *CompleteCourseUseCase {
	return &CompleteCourseUseCase{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

func (uc *CompleteCourseUseCase) Execute(ctx context.Context, cmd CompleteCourseCommand) error {
	e, err := uc.enrollmentRepo.GetByUserAndCourse(ctx, cmd.UserID, cmd.CourseID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return apperrors.NewNotFoundError("enrollment not found")
		}
		uc.logger.Errorw("failed to load enrollment for completion",
			"user_id", cmd.UserID, "course_id", cmd.CourseID, "error", err)
		return apperrors.NewInternalError("failed to complete course")
	}

	if !e.IsActive() {
		return apperrors.NewForbiddenError("no active enrollment")
	}

	e.Complete()
	if err := uc.enrollmentRepo.Update(ctx, e); err != nil {
		uc.logger.Errorw("failed to persist completion", "enrollment_id", e.ID, "error", err)
		return apperrors.NewInternalError("failed to complete course")
	}

	uc.logger.Infow("course completed", "user_id", cmd.UserID, "course_id", cmd.CourseID)
	return nil
}
