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

type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   auth.PasswordHasher
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo user.Repository,
	hasher auth.PasswordHasher,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uint, req dto.UpdateUserRequest) (*user.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load user for update", "id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update user")
	}

	if req.Name != nil {
		u.Rename(*req.Name)
	}
	if req.Role != nil {
		if err := u.ChangeRole(authorization.ParseUserRole(*req.Role)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if req.Status != nil {
		switch user.Status(*req.Status) {
		case user.StatusActive:
			u.Enable()
		case user.StatusDisabled:
			u.Disable()
		default:
			return nil, apperrors.NewValidationError("invalid status")
		}
	}
	if req.Password != nil {
		if !u.Role.IsAdmin() {
			return nil, apperrors.NewValidationError("only admin accounts can have a password")
		}
		hash, err := uc.hasher.Hash(*req.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, apperrors.NewInternalError("failed to update user")
		}
		u.SetPasswordHash(hash)
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		if apperrors.GetAppError(err) != nil {
			return nil, err
		}
		uc.logger.Errorw("failed to update user", "id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user updated by admin", "user_id", u.ID)
	return u, nil
}
