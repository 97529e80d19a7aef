package usecases

import (
	"context"

	"coursekit/internal/domain/user"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	users, total, err := uc.userRepo.List(ctx, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, 0, apperrors.NewInternalError("failed to load users")
	}
	return users, total, nil
}
