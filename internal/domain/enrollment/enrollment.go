package enrollment

import (
	"fmt"
	"time"

	"coursekit/internal/shared/biztime"
)

// Status is the enrollment state. Access checks only honour active rows.
type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusRevoked
}

// Enrollment grants a user access to a course's content. Completion is a
// timestamp orthogonal to access: a completed course remains accessible and
// a revoked one stays marked completed.
type Enrollment struct {
	ID          uint
	UserID      uint
	CourseID    uint
	Status      Status
	CompletedAt *time.Time
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewEnrollment(userID, courseID uint) (*Enrollment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == 0 {
		return nil, fmt.Errorf("course ID is required")
	}

	now := biztime.NowUTC()
	return &Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		Status:    StatusActive,
		Metadata:  make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (e *Enrollment) IsActive() bool {
	return e.Status == StatusActive
}

// Revoke withdraws access. Revoking twice is a no-op.
func (e *Enrollment) Revoke() {
	if e.Status == StatusRevoked {
		return
	}
	e.Status = StatusRevoked
	e.UpdatedAt = biztime.NowUTC()
}

// Reinstate re-activates a previously revoked enrollment.
func (e *Enrollment) Reinstate() {
	if e.Status == StatusActive {
		return
	}
	e.Status = StatusActive
	e.UpdatedAt = biztime.NowUTC()
}

// Complete stamps the completion time once; later calls keep the first stamp.
func (e *Enrollment) Complete() {
	if e.CompletedAt != nil {
		return
	}
	now := biztime.NowUTC()
	e.CompletedAt = &now
	e.UpdatedAt = now
}

func (e *Enrollment) IsCompleted() bool {
	return e.CompletedAt != nil
}

func (e *Enrollment) SetMetadata(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
	e.UpdatedAt = biztime.NowUTC()
}
