package usecases

import (
	"context"
	"errors"

	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/cache"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// CodeStore issues and consumes one-time login codes.
type CodeStore interface {
	Generate(ctx context.Context, userID uint, email string) (string, error)
	Verify(ctx context.Context, code, clientIP string) (uint, error)
}

// MagicLinkSender delivers the login link.
type MagicLinkSender interface {
	SendMagicLinkEmail(to, code, redirect string) error
}

type RequestMagicLinkCommand struct {
	Email    string
	Redirect string
}

type RequestMagicLinkUseCase struct {
	userRepo  user.Repository
	codeStore CodeStore
	sender    MagicLinkSender
	logger    logger.Interface
}

func NewRequestMagicLinkUseCase(
	userRepo user.Repository,
	codeStore CodeStore,
	sender MagicLinkSender,
	logger logger.Interface,
) *RequestMagicLinkUseCase {
	return &RequestMagicLinkUseCase{
		userRepo:  userRepo,
		codeStore: codeStore,
		sender:    sender,
		logger:    logger,
	}
}

// Execute requests a login link for the given address. Unknown and disabled
// accounts succeed silently so the endpoint cannot be used to probe which
// emails exist.
func (uc *RequestMagicLinkUseCase) Execute(ctx context.Context, cmd RequestMagicLinkCommand) error {
	email, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		return apperrors.NewValidationError("invalid email address")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			uc.logger.Debugw("magic link requested for unknown email", "email", email)
			return nil
		}
		uc.logger.Errorw("failed to look up user for magic link", "email", email, "error", err)
		return apperrors.NewInternalError("failed to process login request")
	}

	if !u.IsActive() {
		uc.logger.Infow("magic link requested for disabled account", "user_id", u.ID)
		return nil
	}

	code, err := uc.codeStore.Generate(ctx, u.ID, u.Email)
	if err != nil {
		if errors.Is(err, cache.ErrRateLimited) {
			return apperrors.NewBadRequestError("too many login requests, please try again later")
		}
		uc.logger.Errorw("failed to generate login code", "user_id", u.ID, "error", err)
		return apperrors.NewInternalError("failed to process login request")
	}

	if err := uc.sender.SendMagicLinkEmail(u.Email, code, cmd.Redirect); err != nil {
		uc.logger.Errorw("failed to send magic link email", "user_id", u.ID, "error", err)
		return apperrors.NewInternalError("failed to send login email")
	}

	uc.logger.Infow("magic link sent", "user_id", u.ID)
	return nil
}
