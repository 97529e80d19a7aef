package mappers

import (
	"coursekit/internal/domain/course"
	"coursekit/internal/infrastructure/persistence/models"
)

// CourseMapper handles conversion between Course domain and model, lessons
// included.
type CourseMapper interface {
	ToModel(c *course.Course) *models.CourseModel
	ToDomain(model *models.CourseModel) *course.Course
	LessonToModel(l *course.Lesson) *models.LessonModel
	LessonToDomain(model *models.LessonModel) *course.Lesson
}

type CourseMapperImpl struct{}

// NewCourseMapper creates a new CourseMapper.
func NewCourseMapper() CourseMapper {
	return &CourseMapperImpl{}
}

func (m *CourseMapperImpl) ToModel(c *course.Course) *models.CourseModel {
	model := &models.CourseModel{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		PriceCents:  c.PriceCents,
		Published:   c.Published,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.Lessons {
		model.Lessons = append(model.Lessons, *m.LessonToModel(&c.Lessons[i]))
	}
	return model
}

func (m *CourseMapperImpl) ToDomain(model *models.CourseModel) *course.Course {
	c := &course.Course{
		ID:          model.ID,
		Slug:        model.Slug,
		Title:       model.Title,
		Description: model.Description,
		PriceCents:  model.PriceCents,
		Published:   model.Published,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	for i := range model.Lessons {
		c.Lessons = append(c.Lessons, *m.LessonToDomain(&model.Lessons[i]))
	}
	return c
}

func (m *CourseMapperImpl) LessonToModel(l *course.Lesson) *models.LessonModel {
	return &models.LessonModel{
		ID:        l.ID,
		CourseID:  l.CourseID,
		Slug:      l.Slug,
		Title:     l.Title,
		ContentMD: l.ContentMD,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (m *CourseMapperImpl) LessonToDomain(model *models.LessonModel) *course.Lesson {
	return &course.Lesson{
		ID:        model.ID,
		CourseID:  model.CourseID,
		Slug:      model.Slug,
		Title:     model.Title,
		ContentMD: model.ContentMD,
		Position:  model.Position,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
