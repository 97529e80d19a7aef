package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/persistence/mappers"
	"coursekit/internal/infrastructure/persistence/models"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
)

// UserRepositoryImpl implements the user.Repository interface
type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("email already registered")
		}
		r.logger.Errorw("failed to create user", "email", u.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = model.ID

	r.logger.Infow("user created", "id", model.ID, "email", model.Email, "role", model.Role)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"email":         model.Email,
			"name":          model.Name,
			"role":          model.Role,
			"status":        model.Status,
			"password_hash": model.PasswordHash,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("email already registered")
		}
		r.logger.Errorw("failed to update user", "id", u.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "page", page, "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, len(userModels))
	for i := range userModels {
		users[i] = r.mapper.ToDomain(&userModels[i])
	}

	return users, total, nil
}
