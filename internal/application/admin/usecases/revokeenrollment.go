package usecases

import (
	"context"

	"coursekit/internal/domain/enrollment"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// RevokeEnrollmentUseCase withdraws course access. The row survives so the
// grant history and completion stamp are kept.
type RevokeEnrollmentUseCase struct {
	enrollmentRepo enrollment.Repository
	logger         logger.Interface
}

func NewRevokeEnrollmentUseCase(enrollmentRepo enrollment.Repository, logger logger.Interface) *RevokeEnrollmentUseCase {
	return &RevokeEnrollmentUseCase{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

func (uc *RevokeEnrollmentUseCase) Execute(ctx context.Context, userID, courseID uint) error {
	e, err := uc.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return apperrors.NewNotFoundError("enrollment not found")
		}
		uc.logger.Errorw("failed to load enrollment for revocation",
			"user_id", userID, "course_id", courseID, "error", err)
		return apperrors.NewInternalError("failed to revoke enrollment")
	}

	e.Revoke()
	if err := uc.enrollmentRepo.Update(ctx, e); err != nil {
		uc.logger.Errorw("failed to revoke enrollment", "enrollment_id", e.ID, "error", err)
		return apperrors.NewInternalError("failed to revoke enrollment")
	}

	uc.logger.Infow("enrollment revoked",
		"enrollment_id", e.ID, "user_id", userID, "course_id", courseID)
	return nil
}
