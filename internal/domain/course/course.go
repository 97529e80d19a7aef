package course

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"coursekit/internal/shared/biztime"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Course is a sellable course in the catalog. Only published courses show up
// on the public store; access to lesson content is governed by enrollments,
// not by the course itself.
type Course struct {
	ID          uint
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Published   bool
	Lessons     []Lesson
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Lesson is a unit of course content, authored as markdown.
type Lesson struct {
	ID        uint
	CourseID  uint
	Slug      string
	Title     string
	ContentMD string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCourse(slug, title, description string, priceCents int64) (*Course, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("course title is required")
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("course price cannot be negative")
	}

	now := biztime.NowUTC()
	return &Course{
		Slug:        slug,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		PriceCents:  priceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateSlug enforces the URL-safe slug format.
func ValidateSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("invalid slug: %q", slug)
	}
	return nil
}

func (c *Course) Publish() {
	c.Published = true
	c.UpdatedAt = biztime.NowUTC()
}

func (c *Course) Unpublish() {
	c.Published = false
	c.UpdatedAt = biztime.NowUTC()
}

// AddLesson appends a lesson at the end of the course.
func (c *Course) AddLesson(slug, title, contentMD string) (*Lesson, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("lesson title is required")
	}
	for _, l := range c.Lessons {
		if l.Slug == slug {
			return nil, fmt.Errorf("lesson slug already in use: %q", slug)
		}
	}

	now := biztime.NowUTC()
	lesson := Lesson{
		CourseID:  c.ID,
		Slug:      slug,
		Title:     strings.TrimSpace(title),
		ContentMD: contentMD,
		Position:  len(c.Lessons) + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Lessons = append(c.Lessons, lesson)
	c.UpdatedAt = now
	return &c.Lessons[len(c.Lessons)-1], nil
}

// FindLesson returns the lesson with the given slug, or nil.
func (c *Course) FindLesson(slug string) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Slug == slug {
			return &c.Lessons[i]
		}
	}
	return nil
}
