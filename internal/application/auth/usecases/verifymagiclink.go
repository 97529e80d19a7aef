package usecases

import (
	"context"
	"errors"

	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/cache"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

type VerifyMagicLinkCommand struct {
	Code     string
	ClientIP string
}

type VerifyMagicLinkUseCase struct {
	userRepo  user.Repository
	codeStore CodeStore
	logger    logger.Interface
}

func NewVerifyMagicLinkUseCase(
	userRepo user.Repository,
	codeStore CodeStore,
	logger logger.Interface,
) *VerifyMagicLinkUseCase {
	return &VerifyMagicLinkUseCase{
		userRepo:  userRepo,
		codeStore: codeStore,
		logger:    logger,
	}
}

// Execute consumes a login code and returns the account it belongs to. The
// code is spent even when the account turns out to be disabled.
func (uc *VerifyMagicLinkUseCase) Execute(ctx context.Context, cmd VerifyMagicLinkCommand) (*user.User, error) {
	userID, err := uc.codeStore.Verify(ctx, cmd.Code, cmd.ClientIP)
	if err != nil {
		if errors.Is(err, cache.ErrRateLimited) {
			return nil, apperrors.NewBadRequestError("too many attempts, please try again later")
		}
		if errors.Is(err, cache.ErrCodeInvalid) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired login link")
		}
		uc.logger.Errorw("failed to verify login code", "error", err)
		return nil, apperrors.NewInternalError("failed to verify login link")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired login link")
		}
		uc.logger.Errorw("failed to load user for login", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("failed to verify login link")
	}

	if !u.IsActive() {
		uc.logger.Warnw("login attempt on disabled account", "user_id", u.ID)
		return nil, apperrors.NewUnauthorizedError("invalid or expired login link")
	}

	uc.logger.Infow("magic link login", "user_id", u.ID)
	return u, nil
}
