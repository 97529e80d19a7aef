package usecases

import (
	"context"

	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/auth"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type PasswordLoginCommand struct {
	Email    string
	Password string
}

// PasswordLoginUseCase authenticates back-office admins. Students never have
// a password; their only path is the magic link.
type PasswordLoginUseCase struct {
	userRepo user.Repository
	hasher   auth.PasswordHasher
	logger   logger.Interface
}

func NewPasswordLoginUseCase(
	userRepo user.Repository,
	hasher auth.PasswordHasher,
	logger logger.Interface,
) *PasswordLoginUseCase {
	return &PasswordLoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// Execute verifies admin credentials. Every failure path answers with the
// same message so responses do not reveal which part was wrong.
func (uc *PasswordLoginUseCase) Execute(ctx context.Context, cmd PasswordLoginCommand) (*user.User, error) {
	invalid := apperrors.NewUnauthorizedError("invalid credentials")

	email, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, invalid
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, invalid
		}
		uc.logger.Errorw("failed to look up user for password login", "email", email, "error", err)
		return nil, apperrors.NewInternalError("failed to process login")
	}

	if !u.IsActive() || !u.CanPasswordLogin() {
		return nil, invalid
	}

	if err := uc.hasher.Compare(u.PasswordHash, cmd.Password); err != nil {
		uc.logger.Warnw("failed password login attempt", "user_id", u.ID)
		return nil, invalid
	}

	uc.logger.Infow("password login", "user_id", u.ID)
	return u, nil
}
