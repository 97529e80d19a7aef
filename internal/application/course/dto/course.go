package dto

import (
	"time"

	"coursekit/internal/domain/course"
)

// CourseSummary is the catalog listing shape. No lesson content leaks here.
type CourseSummary struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Published   bool   `json:"published"`
	LessonCount int    `json:"lesson_count"`
}

// LessonSummary lists a lesson without its content.
type LessonSummary struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// CourseDetail is the course page shape, lessons listed but not rendered.
type CourseDetail struct {
	CourseSummary
	Lessons []LessonSummary `json:"lessons"`
}

// LessonContent is a rendered lesson as served to an enrolled student.
type LessonContent struct {
	CourseSlug  string `json:"course_slug"`
	CourseTitle string `json:"course_title"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	HTML        string `json:"html"`
}

// EnrolledCourse is a dashboard entry.
type EnrolledCourse struct {
	CourseSummary
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewCourseSummary(c *course.Course) CourseSummary {
	return CourseSummary{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		PriceCents:  c.PriceCents,
		Published:   c.Published,
		LessonCount: len(c.Lessons),
	}
}

func NewCourseDetail(c *course.Course) CourseDetail {
	detail := CourseDetail{CourseSummary: NewCourseSummary(c)}
	for i := range c.Lessons {
		detail.Lessons = append(detail.Lessons, LessonSummary{
			Slug:     c.Lessons[i].Slug,
			Title:    c.Lessons[i].Title,
			Position: c.Lessons[i].Position,
		})
	}
	return detail
}
