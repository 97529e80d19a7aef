package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/domain/course"
	"coursekit/internal/domain/enrollment"
	"coursekit/internal/domain/user"
	"coursekit/internal/shared/authorization"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type mockEnrollmentRepo struct {
	mock.Mock
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, e *enrollment.Enrollment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEnrollmentRepo) Update(ctx context.Context, e *enrollment.Enrollment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*enrollment.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if e := args.Get(0); e != nil {
		return e.(*enrollment.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEnrollmentRepo) ListActiveByUser(ctx context.Context, userID uint) ([]*enrollment.Enrollment, error) {
	args := m.Called(ctx, userID)
	if e := args.Get(0); e != nil {
		return e.([]*enrollment.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return nil, 0, args.Error(2)
}

type mockCourseRepo struct {
	mock.Mock
}

func (m *mockCourseRepo) Create(ctx context.Context, c *course.Course) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCourseRepo) Update(ctx context.Context, c *course.Course) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*course.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*course.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseRepo) GetBySlug(ctx context.Context, slug string) (*course.Course, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*course.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseRepo) List(ctx context.Context, publishedOnly bool) ([]*course.Course, error) {
	args := m.Called(ctx, publishedOnly)
	if c := args.Get(0); c != nil {
		return c.([]*course.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendEnrollmentEmail(to, courseTitle, courseSlug string) error {
	return m.Called(to, courseTitle, courseSlug).Error(0)
}

type nopLogger struct{}

func (nopLogger) Debugw(msg string, kv ...interface{}) {}
func (nopLogger) Infow(msg string, kv ...interface{})  {}
func (nopLogger) Warnw(msg string, kv ...interface{})  {}
func (nopLogger) Errorw(msg string, kv ...interface{}) {}
func (l nopLogger) With(args ...any) logger.Interface  { return l }
func (l nopLogger) Named(name string) logger.Interface { return l }

func grantFixture(t *testing.T) (*mockEnrollmentRepo, *mockUserRepo, *mockCourseRepo, *mockNotifier, *GrantEnrollmentUseCase) {
	enrollments := new(mockEnrollmentRepo)
	users := new(mockUserRepo)
	courses := new(mockCourseRepo)
	notifier := new(mockNotifier)
	uc := NewGrantEnrollmentUseCase(enrollments, users, courses, notifier, nopLogger{})

	u, err := user.NewUser("student@example.com", "Student", authorization.RoleStudent)
	require.NoError(t, err)
	u.ID = 1
	users.On("GetByID", mock.Anything, uint(1)).Return(u, nil)

	c, err := course.NewCourse("go-course", "Go Course", "", 4900)
	require.NoError(t, err)
	c.ID = 10
	courses.On("GetByID", mock.Anything, uint(10)).Return(c, nil)

	return enrollments, users, courses, notifier, uc
}

func TestGrantEnrollment_CreatesNewGrant(t *testing.T) {
	enrollments, _, _, notifier, uc := grantFixture(t)

	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).
		Return(nil, apperrors.NewNotFoundError("enrollment not found"))
	enrollments.On("Create", mock.Anything, mock.MatchedBy(func(e *enrollment.Enrollment) bool {
		return e.UserID == 1 && e.CourseID == 10 && e.IsActive()
	})).Return(nil)
	notifier.On("SendEnrollmentEmail", "student@example.com", "Go Course", "go-course").Return(nil)

	e, err := uc.Execute(context.Background(), dto.GrantEnrollmentRequest{UserID: 1, CourseID: 10, Source: "checkout"})

	require.NoError(t, err)
	assert.True(t, e.IsActive())
	assert.Equal(t, "checkout", e.Metadata["source"])
	enrollments.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestGrantEnrollment_ReinstatesRevokedGrant(t *testing.T) {
	enrollments, _, _, notifier, uc := grantFixture(t)

	existing, err := enrollment.NewEnrollment(1, 10)
	require.NoError(t, err)
	existing.ID = 5
	existing.Revoke()

	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).Return(existing, nil)
	enrollments.On("Update", mock.Anything, mock.MatchedBy(func(e *enrollment.Enrollment) bool {
		return e.ID == 5 && e.IsActive()
	})).Return(nil)
	notifier.On("SendEnrollmentEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	e, err := uc.Execute(context.Background(), dto.GrantEnrollmentRequest{UserID: 1, CourseID: 10})

	require.NoError(t, err)
	assert.True(t, e.IsActive())
	enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGrantEnrollment_ActiveGrantConflicts(t *testing.T) {
	enrollments, _, _, _, uc := grantFixture(t)

	existing, err := enrollment.NewEnrollment(1, 10)
	require.NoError(t, err)
	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).Return(existing, nil)

	_, err = uc.Execute(context.Background(), dto.GrantEnrollmentRequest{UserID: 1, CourseID: 10})

	assert.True(t, apperrors.IsConflictError(err))
}

func TestGrantEnrollment_UnknownUser(t *testing.T) {
	enrollments := new(mockEnrollmentRepo)
	users := new(mockUserRepo)
	courses := new(mockCourseRepo)
	uc := NewGrantEnrollmentUseCase(enrollments, users, courses, nil, nopLogger{})

	users.On("GetByID", mock.Anything, uint(99)).
		Return(nil, apperrors.NewNotFoundError("user not found"))

	_, err := uc.Execute(context.Background(), dto.GrantEnrollmentRequest{UserID: 99, CourseID: 10})

	assert.True(t, apperrors.IsNotFoundError(err))
	enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGrantEnrollment_NotifierFailureDoesNotUndoGrant(t *testing.T) {
	enrollments, _, _, notifier, uc := grantFixture(t)

	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).
		Return(nil, apperrors.NewNotFoundError("enrollment not found"))
	enrollments.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendEnrollmentEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	e, err := uc.Execute(context.Background(), dto.GrantEnrollmentRequest{UserID: 1, CourseID: 10})

	require.NoError(t, err)
	assert.True(t, e.IsActive())
}

func TestRevokeEnrollment(t *testing.T) {
	enrollments := new(mockEnrollmentRepo)
	uc := NewRevokeEnrollmentUseCase(enrollments, nopLogger{})

	existing, err := enrollment.NewEnrollment(1, 10)
	require.NoError(t, err)
	existing.ID = 5

	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).Return(existing, nil)
	enrollments.On("Update", mock.Anything, mock.MatchedBy(func(e *enrollment.Enrollment) bool {
		return e.ID == 5 && !e.IsActive()
	})).Return(nil)

	err = uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	enrollments.AssertExpectations(t)
}

func TestRevokeEnrollment_NotFound(t *testing.T) {
	enrollments := new(mockEnrollmentRepo)
	uc := NewRevokeEnrollmentUseCase(enrollments, nopLogger{})

	enrollments.On("GetByUserAndCourse", mock.Anything, uint(1), uint(10)).
		Return(nil, apperrors.NewNotFoundError("enrollment not found"))

	err := uc.Execute(context.Background(), 1, 10)

	assert.True(t, apperrors.IsNotFoundError(err))
}
