package usecases

import (
	"context"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/shared/authorization"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// CreateUserUseCase creates accounts from the back-office. The external
// checkout flow uses it too, always with the student role.
type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   auth.PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	hasher auth.PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, req dto.CreateUserRequest) (*user.User, error) {
	role := authorization.ParseUserRole(req.Role)

	u, err := user.NewUser(req.Email, req.Name, role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if req.Password != "" {
		if !role.IsAdmin() {
			return nil, apperrors.NewValidationError("only admin accounts can have a password")
		}
		hash, err := uc.hasher.Hash(req.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, apperrors.NewInternalError("failed to create user")
		}
		u.SetPasswordHash(hash)
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if apperrors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create user", "email", u.Email, "error", err)
		return nil, apperrors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created by admin", "user_id", u.ID, "role", u.Role)
	return u, nil
}
