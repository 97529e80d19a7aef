package enrollment

import "context"

// Repository is the enrollment store consumed by the access resolver and the
// admin back-office.
type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	Update(ctx context.Context, e *Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*Enrollment, error)

	// HasActiveEnrollment is the hot path behind every lesson request:
	// true iff an active row exists for the pair.
	HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error)

	ListActiveByUser(ctx context.Context, userID uint) ([]*Enrollment, error)
}
