package mappers

import (
	"coursekit/internal/domain/user"
	"coursekit/internal/infrastructure/persistence/models"
	"coursekit/internal/shared/authorization"
)

// UserMapper handles conversion between User domain and model.
type UserMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(u *user.User) *models.UserModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.UserModel) *user.User
}

type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role.String(),
		Status:       string(u.Status),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		Name:         model.Name,
		Role:         authorization.ParseUserRole(model.Role),
		Status:       user.Status(model.Status),
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
