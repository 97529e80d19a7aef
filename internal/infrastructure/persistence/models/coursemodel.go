package models

import (
	"time"

	"coursekit/internal/shared/constants"
)

// CourseModel is the database persistence model for courses.
type CourseModel struct {
	ID          uint   `gorm:"primarykey"`
	Slug        string `gorm:"not null;size:255;uniqueIndex:uk_courses_slug"`
	Title       string `gorm:"not null;size:255"`
	Description string `gorm:"type:text"`
	PriceCents  int64  `gorm:"not null;default:0"`
	Published   bool   `gorm:"not null;default:false"`
	Lessons     []LessonModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (CourseModel) TableName() string {
	return constants.TableCourses
}
