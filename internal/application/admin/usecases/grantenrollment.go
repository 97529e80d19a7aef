package usecases

import (
	"context"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/domain/course"
	"coursekit/internal/domain/enrollment"
	"coursekit/internal/domain/user"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// EnrollmentNotifier tells a student their course was unlocked. Optional.
type EnrollmentNotifier interface {
	SendEnrollmentEmail(to, courseTitle, courseSlug string) error
}

// GrantEnrollmentUseCase unlocks a course for a user. This is what the
// checkout webhook and the back-office both call; a previously revoked
// enrollment is reinstated instead of duplicated.
type GrantEnrollmentUseCase struct {
	enrollmentRepo enrollment.Repository
	userRepo       user.Repository
	courseRepo     course.Repository
	notifier       EnrollmentNotifier
	logger         logger.Interface
}

func NewGrantEnrollmentUseCase(
	enrollmentRepo enrollment.Repository,
	userRepo user.Repository,
	courseRepo course.Repository,
	notifier EnrollmentNotifier,
	logger logger.Interface,
) *GrantEnrollmentUseCase {
	return &GrantEnrollmentUseCase{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *GrantEnrollmentUseCase) Execute(ctx context.Context, req dto.GrantEnrollmentRequest) (*enrollment.Enrollment, error) {
	u, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user for enrollment", "user_id", req.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to grant enrollment")
	}

	c, err := uc.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("course not found")
		}
		uc.logger.Errorw("failed to load course for enrollment", "course_id", req.CourseID, "error", err)
		return nil, apperrors.NewInternalError("failed to grant enrollment")
	}

	existing, err := uc.enrollmentRepo.GetByUserAndCourse(ctx, req.UserID, req.CourseID)
	if err != nil && !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to check existing enrollment",
			"user_id", req.UserID, "course_id", req.CourseID, "error", err)
		return nil, apperrors.NewInternalError("failed to grant enrollment")
	}

	var e *enrollment.Enrollment
	if existing != nil {
		if existing.IsActive() {
			return nil, apperrors.NewConflictError("enrollment already active")
		}
		existing.Reinstate()
		if req.Source != "" {
			existing.SetMetadata("source", req.Source)
		}
		if err := uc.enrollmentRepo.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to reinstate enrollment", "enrollment_id", existing.ID, "error", err)
			return nil, apperrors.NewInternalError("failed to grant enrollment")
		}
		e = existing
	} else {
		e, err = enrollment.NewEnrollment(req.UserID, req.CourseID)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if req.Source != "" {
			e.SetMetadata("source", req.Source)
		}
		if err := uc.enrollmentRepo.Create(ctx, e); err != nil {
			if apperrors.IsConflictError(err) {
				return nil, err
			}
			uc.logger.Errorw("failed to create enrollment",
				"user_id", req.UserID, "course_id", req.CourseID, "error", err)
			return nil, apperrors.NewInternalError("failed to grant enrollment")
		}
	}

	if uc.notifier != nil {
		// Notification failure does not undo the grant.
		if err := uc.notifier.SendEnrollmentEmail(u.Email, c.Title, c.Slug); err != nil {
			uc.logger.Warnw("failed to send enrollment email",
				"user_id", u.ID, "course_id", c.ID, "error", err)
		}
	}

	uc.logger.Infow("enrollment granted",
		"enrollment_id", e.ID, "user_id", req.UserID, "course_id", req.CourseID)
	return e, nil
}
