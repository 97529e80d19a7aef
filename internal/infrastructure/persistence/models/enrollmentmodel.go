package models

import (
	"time"

	"gorm.io/datatypes"

	"coursekit/internal/shared/constants"
)

// EnrollmentModel is the database persistence model for enrollments.
// One row per (user, course); revocation flips status rather than deleting.
type EnrollmentModel struct {
	ID          uint   `gorm:"primarykey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uk_enrollments_user_course,priority:1;index:idx_enrollments_user_status,priority:1"`
	CourseID    uint   `gorm:"not null;uniqueIndex:uk_enrollments_user_course,priority:2"`
	Status      string `gorm:"not null;size:20;default:active;index:idx_enrollments_user_status,priority:2"`
	CompletedAt *time.Time
	Metadata    datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (EnrollmentModel) TableName() string {
	return constants.TableEnrollments
}
