package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coursekit/internal/domain/course"
	"coursekit/internal/domain/enrollment"
	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/persistence/models"
	"coursekit/internal/shared/authorization"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.CourseModel{},
		&models.LessonModel{},
		&models.EnrollmentModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, email string, role authorization.UserRole) *user.User {
	u, err := user.NewUser(email, "Test User", role)
	require.NoError(t, err)
	return u
}

func createTestCourse(t *testing.T, slug string) *course.Course {
	c, err := course.NewCourse(slug, "Test Course", "A course for testing", 4900)
	require.NoError(t, err)
	return c
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create and get by email", func(t *testing.T) {
		u := createTestUser(t, "student@example.com", authorization.RoleStudent)
		err := repo.Create(ctx, u)
		require.NoError(t, err)
		assert.NotZero(t, u.ID)

		found, err := repo.GetByEmail(ctx, "student@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, authorization.RoleStudent, found.Role)
		assert.Equal(t, user.StatusActive, found.Status)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		u1 := createTestUser(t, "dup@example.com", authorization.RoleStudent)
		require.NoError(t, repo.Create(ctx, u1))

		u2 := createTestUser(t, "dup@example.com", authorization.RoleStudent)
		err := repo.Create(ctx, u2)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("get unknown user returns not found", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("update persists role change", func(t *testing.T) {
		u := createTestUser(t, "promote@example.com", authorization.RoleStudent)
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, u.ChangeRole(authorization.RoleAdmin))
		require.NoError(t, repo.Update(ctx, u))

		found, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, authorization.RoleAdmin, found.Role)
	})

	t.Run("list paginates", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, logger.NewLogger())

		for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
			require.NoError(t, repo.Create(ctx, createTestUser(t, email, authorization.RoleStudent)))
		}

		users, total, err := repo.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 2)

		users, _, err = repo.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestCourseRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCourseRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create with lessons and get by slug", func(t *testing.T) {
		c := createTestCourse(t, "intro-course")
		_, err := c.AddLesson("lesson-one", "Lesson One", "# Hello")
		require.NoError(t, err)
		_, err = c.AddLesson("lesson-two", "Lesson Two", "# World")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, c))
		assert.NotZero(t, c.ID)

		found, err := repo.GetBySlug(ctx, "intro-course")
		require.NoError(t, err)
		require.Len(t, found.Lessons, 2)
		assert.Equal(t, "lesson-one", found.Lessons[0].Slug)
		assert.Equal(t, "lesson-two", found.Lessons[1].Slug)
		assert.Equal(t, 1, found.Lessons[0].Position)
	})

	t.Run("unknown slug returns not found", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "does-not-exist")
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("list published only", func(t *testing.T) {
		published := createTestCourse(t, "published-course")
		published.Publish()
		require.NoError(t, repo.Create(ctx, published))

		draft := createTestCourse(t, "draft-course")
		require.NoError(t, repo.Create(ctx, draft))

		courses, err := repo.List(ctx, true)
		require.NoError(t, err)
		for _, c := range courses {
			assert.True(t, c.Published)
		}

		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Greater(t, len(all), len(courses))
	})

	t.Run("update replaces lessons", func(t *testing.T) {
		c := createTestCourse(t, "evolving-course")
		_, err := c.AddLesson("old-lesson", "Old Lesson", "old")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))

		c.Lessons = nil
		_, err = c.AddLesson("new-lesson", "New Lesson", "new")
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.GetBySlug(ctx, "evolving-course")
		require.NoError(t, err)
		require.Len(t, found.Lessons, 1)
		assert.Equal(t, "new-lesson", found.Lessons[0].Slug)
	})
}

func TestEnrollmentRepository(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, logger.NewLogger())
	courseRepo := NewCourseRepository(db, logger.NewLogger())
	repo := NewEnrollmentRepository(db, logger.NewLogger())
	ctx := context.Background()

	u := createTestUser(t, "enrollee@example.com", authorization.RoleStudent)
	require.NoError(t, userRepo.Create(ctx, u))
	c := createTestCourse(t, "enrollment-course")
	require.NoError(t, courseRepo.Create(ctx, c))

	t.Run("no access before enrollment, access after", func(t *testing.T) {
		has, err := repo.HasActiveEnrollment(ctx, u.ID, c.ID)
		require.NoError(t, err)
		assert.False(t, has)

		e, err := enrollment.NewEnrollment(u.ID, c.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, e))

		has, err = repo.HasActiveEnrollment(ctx, u.ID, c.ID)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("revoked enrollment no longer grants access", func(t *testing.T) {
		e, err := repo.GetByUserAndCourse(ctx, u.ID, c.ID)
		require.NoError(t, err)

		e.Revoke()
		require.NoError(t, repo.Update(ctx, e))

		has, err := repo.HasActiveEnrollment(ctx, u.ID, c.ID)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("reinstate restores access and keeps completion", func(t *testing.T) {
		e, err := repo.GetByUserAndCourse(ctx, u.ID, c.ID)
		require.NoError(t, err)

		e.Complete()
		e.Reinstate()
		require.NoError(t, repo.Update(ctx, e))

		found, err := repo.GetByUserAndCourse(ctx, u.ID, c.ID)
		require.NoError(t, err)
		assert.True(t, found.IsActive())
		assert.True(t, found.IsCompleted())
	})

	t.Run("metadata round-trips through the JSON column", func(t *testing.T) {
		e, err := repo.GetByUserAndCourse(ctx, u.ID, c.ID)
		require.NoError(t, err)

		e.SetMetadata("source", "checkout")
		require.NoError(t, repo.Update(ctx, e))

		found, err := repo.GetByUserAndCourse(ctx, u.ID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "checkout", found.Metadata["source"])
	})

	t.Run("duplicate enrollment conflicts", func(t *testing.T) {
		e, err := enrollment.NewEnrollment(u.ID, c.ID)
		require.NoError(t, err)
		err = repo.Create(ctx, e)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("list active by user", func(t *testing.T) {
		other := createTestCourse(t, "second-course")
		require.NoError(t, courseRepo.Create(ctx, other))

		e, err := enrollment.NewEnrollment(u.ID, other.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, e))

		active, err := repo.ListActiveByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})
}
