package models

import (
	"time"

	"coursekit/internal/shared/constants"
)

// LessonModel is the database persistence model for lessons.
type LessonModel struct {
	ID        uint   `gorm:"primarykey"`
	CourseID  uint   `gorm:"not null;uniqueIndex:uk_lessons_course_slug,priority:1;index:idx_lessons_course_position,priority:1"`
	Slug      string `gorm:"not null;size:255;uniqueIndex:uk_lessons_course_slug,priority:2"`
	Title     string `gorm:"not null;size:255"`
	ContentMD string `gorm:"column:content_md;type:mediumtext"`
	Position  int    `gorm:"not null;default:0;index:idx_lessons_course_position,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (LessonModel) TableName() string {
	return constants.TableLessons
}
