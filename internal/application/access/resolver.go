// Package access answers whether a user may view a course's lesson content.
// The check is advisory to the serving routes and repeated on every request;
// nothing is cached across requests.
package access

import (
	"context"

	"coursekit/internal/domain/course"
	"coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// Source names the system that produced an access decision.
type Source string

const (
	SourceDatabase   Source = "database"
	SourceMembership Source = "membership"
)

const reasonCourseNotFound = "Course not found"

// Result is the outcome of an access check.
type Result struct {
	HasAccess bool   `json:"has_access"`
	Source    Source `json:"source"`
	Reason    string `json:"reason,omitempty"`
}

// EnrollmentChecker is the slice of the enrollment store the resolver needs.
type EnrollmentChecker interface {
	HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error)
}

// CourseFinder resolves slugs to courses.
type CourseFinder interface {
	GetBySlug(ctx context.Context, slug string) (*course.Course, error)
}

// Resolver decides course content access from the enrollment table, with an
// optional secondary membership source layered on top.
type Resolver struct {
	enrollments EnrollmentChecker
	courses     CourseFinder
	membership  MembershipProvider
	logger      logger.Interface
}

func NewResolver(
	enrollments EnrollmentChecker,
	courses CourseFinder,
	membership MembershipProvider,
	logger logger.Interface,
) *Resolver {
	if membership == nil {
		membership = NewNullMembershipProvider()
	}
	return &Resolver{
		enrollments: enrollments,
		courses:     courses,
		membership:  membership,
		logger:      logger,
	}
}

// CheckAccess reports whether the user may view the course's lessons. A
// store failure is logged and resolved to "no access" so an outage degrades
// to a denied page instead of a 500.
func (r *Resolver) CheckAccess(ctx context.Context, userID, courseID uint) Result {
	enrolled, err := r.enrollments.HasActiveEnrollment(ctx, userID, courseID)
	if err != nil {
		r.logger.Warnw("enrollment lookup failed, denying access",
			"error", err, "user_id", userID, "course_id", courseID)
		enrolled = false
	}

	if enrolled {
		return Result{HasAccess: true, Source: SourceDatabase}
	}

	status, err := r.membership.Check(ctx, userID, courseID)
	if err != nil {
		r.logger.Warnw("membership check failed",
			"error", err, "provider", r.membership.Name(),
			"user_id", userID, "course_id", courseID)
		status = MembershipUnknown
	}
	if status == MembershipGranted {
		return Result{HasAccess: true, Source: SourceMembership}
	}

	return Result{HasAccess: false, Source: SourceDatabase, Reason: "No active enrollment"}
}

// CheckAccessBySlug resolves the slug first; an unknown course
// short-circuits without an enrollment lookup.
func (r *Resolver) CheckAccessBySlug(ctx context.Context, userID uint, slug string) Result {
	c, err := r.courses.GetBySlug(ctx, slug)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return Result{HasAccess: false, Source: SourceDatabase, Reason: reasonCourseNotFound}
		}
		r.logger.Warnw("course lookup failed, denying access",
			"error", err, "user_id", userID, "slug", slug)
		return Result{HasAccess: false, Source: SourceDatabase, Reason: reasonCourseNotFound}
	}
	if c == nil {
		return Result{HasAccess: false, Source: SourceDatabase, Reason: reasonCourseNotFound}
	}

	return r.CheckAccess(ctx, userID, c.ID)
}
