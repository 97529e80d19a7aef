package usecases

import (
	"context"

	"coursekit/internal/application/course/dto"
	"coursekit/internal/domain/course"
	"coursekit/internal/domain/enrollment"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// GetDashboardUseCase lists the courses a student can open.
type GetDashboardUseCase struct {
	enrollmentRepo enrollment.Repository
	courseRepo     course.Repository
	logger         logger.Interface
}

func NewGetDashboardUseCase(
	enrollmentRepo enrollment.Repository,
	courseRepo course.Repository,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Execute returns the user's active enrollments with their course details.
// A course that has vanished underneath its enrollment is skipped, not fatal.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, userID uint) ([]dto.EnrolledCourse, error) {
	enrollments, err := uc.enrollmentRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list enrollments", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("failed to load dashboard")
	}

	enrolled := make([]dto.EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		c, err := uc.courseRepo.GetByID(ctx, e.CourseID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				uc.logger.Warnw("enrollment references missing course",
					"enrollment_id", e.ID, "course_id", e.CourseID)
				continue
			}
			uc.logger.Errorw("failed to load enrolled course",
				"course_id", e.CourseID, "error", err)
			return nil, apperrors.NewInternalError("failed to load dashboard")
		}

		enrolled = append(enrolled, dto.EnrolledCourse{
			CourseSummary: dto.NewCourseSummary(c),
			EnrolledAt:    e.CreatedAt,
			CompletedAt:   e.CompletedAt,
		})
	}

	return enrolled, nil
}
