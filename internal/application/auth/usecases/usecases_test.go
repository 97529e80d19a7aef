package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/infrastructure/cache"
	"coursekit/internal/shared/authorization"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

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

type mockCodeStore struct {
	mock.Mock
}

func (m *mockCodeStore) Generate(ctx context.Context, userID uint, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockCodeStore) Verify(ctx context.Context, code, clientIP string) (uint, error) {
	args := m.Called(ctx, code, clientIP)
	return args.Get(0).(uint), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendMagicLinkEmail(to, code, redirect string) error {
	return m.Called(to, code, redirect).Error(0)
}

type nopLogger struct{}

func (nopLogger) Debugw(msg string, kv ...interface{}) {}
func (nopLogger) Infow(msg string, kv ...interface{})  {}
func (nopLogger) Warnw(msg string, kv ...interface{})  {}
func (nopLogger) Errorw(msg string, kv ...interface{}) {}
func (l nopLogger) With(args ...any) logger.Interface  { return l }
func (l nopLogger) Named(name string) logger.Interface { return l }

func activeStudent(t *testing.T, email string) *user.User {
	u, err := user.NewUser(email, "Test Student", authorization.RoleStudent)
	require.NoError(t, err)
	u.ID = 1
	return u
}

func TestRequestMagicLink_SendsForActiveAccount(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)
	sender := new(mockSender)

	u := activeStudent(t, "student@example.com")
	repo.On("GetByEmail", mock.Anything, "student@example.com").Return(u, nil)
	store.On("Generate", mock.Anything, uint(1), "student@example.com").Return("abc123", nil)
	sender.On("SendMagicLinkEmail", "student@example.com", "abc123", "/learn/go-course").Return(nil)

	uc := NewRequestMagicLinkUseCase(repo, store, sender, nopLogger{})
	err := uc.Execute(context.Background(), RequestMagicLinkCommand{
		Email:    "Student@Example.com",
		Redirect: "/learn/go-course",
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestRequestMagicLink_UnknownEmailSucceedsSilently(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)
	sender := new(mockSender)

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, apperrors.NewNotFoundError("user not found"))

	uc := NewRequestMagicLinkUseCase(repo, store, sender, nopLogger{})
	err := uc.Execute(context.Background(), RequestMagicLinkCommand{Email: "nobody@example.com"})

	assert.NoError(t, err)
	store.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendMagicLinkEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestMagicLink_DisabledAccountSucceedsSilently(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)
	sender := new(mockSender)

	u := activeStudent(t, "disabled@example.com")
	u.Disable()
	repo.On("GetByEmail", mock.Anything, "disabled@example.com").Return(u, nil)

	uc := NewRequestMagicLinkUseCase(repo, store, sender, nopLogger{})
	err := uc.Execute(context.Background(), RequestMagicLinkCommand{Email: "disabled@example.com"})

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "SendMagicLinkEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyMagicLink_ValidCode(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)

	u := activeStudent(t, "student@example.com")
	store.On("Verify", mock.Anything, "goodcode", "1.2.3.4").Return(uint(1), nil)
	repo.On("GetByID", mock.Anything, uint(1)).Return(u, nil)

	uc := NewVerifyMagicLinkUseCase(repo, store, nopLogger{})
	got, err := uc.Execute(context.Background(), VerifyMagicLinkCommand{Code: "goodcode", ClientIP: "1.2.3.4"})

	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestVerifyMagicLink_InvalidCode(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)

	store.On("Verify", mock.Anything, "badcode", "1.2.3.4").Return(uint(0), cache.ErrCodeInvalid)

	uc := NewVerifyMagicLinkUseCase(repo, store, nopLogger{})
	_, err := uc.Execute(context.Background(), VerifyMagicLinkCommand{Code: "badcode", ClientIP: "1.2.3.4"})

	assert.True(t, apperrors.IsUnauthorizedError(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestVerifyMagicLink_DisabledAccountRejected(t *testing.T) {
	repo := new(mockUserRepo)
	store := new(mockCodeStore)

	u := activeStudent(t, "disabled@example.com")
	u.Disable()
	store.On("Verify", mock.Anything, "goodcode", "1.2.3.4").Return(uint(1), nil)
	repo.On("GetByID", mock.Anything, uint(1)).Return(u, nil)

	uc := NewVerifyMagicLinkUseCase(repo, store, nopLogger{})
	_, err := uc.Execute(context.Background(), VerifyMagicLinkCommand{Code: "goodcode", ClientIP: "1.2.3.4"})

	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestPasswordLogin_UniformFailureMessage(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	admin, err := user.NewUser("admin@example.com", "Admin", authorization.RoleAdmin)
	require.NoError(t, err)
	admin.ID = 2
	admin.SetPasswordHash(hash)

	student := activeStudent(t, "student@example.com")

	tests := []struct {
		name  string
		email string
		pass  string
		setup func(repo *mockUserRepo)
	}{
		{
			name:  "unknown email",
			email: "nobody@example.com",
			pass:  "whatever",
			setup: func(repo *mockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "nobody@example.com").
					Return(nil, apperrors.NewNotFoundError("user not found"))
			},
		},
		{
			name:  "wrong password",
			email: "admin@example.com",
			pass:  "wrong password",
			setup: func(repo *mockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
			},
		},
		{
			name:  "student has no password path",
			email: "student@example.com",
			pass:  "anything",
			setup: func(repo *mockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "student@example.com").Return(student, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			tt.setup(repo)

			uc := NewPasswordLoginUseCase(repo, hasher, nopLogger{})
			_, err := uc.Execute(context.Background(), PasswordLoginCommand{Email: tt.email, Password: tt.pass})

			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "invalid credentials", appErr.Message)
		})
	}
}

func TestPasswordLogin_Success(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	admin, err := user.NewUser("admin@example.com", "Admin", authorization.RoleAdmin)
	require.NoError(t, err)
	admin.ID = 2
	admin.SetPasswordHash(hash)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

	uc := NewPasswordLoginUseCase(repo, hasher, nopLogger{})
	got, err := uc.Execute(context.Background(), PasswordLoginCommand{
		Email:    "admin@example.com",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
}
