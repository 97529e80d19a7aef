package models

import (
	"time"

	"coursekit/internal/shared/constants"
)

// UserModel is the database persistence model for users.
// This is the anti-corruption layer between domain and database.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"not null;size:255;uniqueIndex:uk_users_email"`
	Name         string `gorm:"not null;size:255;default:''"`
	Role         string `gorm:"not null;size:20;default:student"`
	Status       string `gorm:"not null;size:20;default:active"`
	PasswordHash string `gorm:"not null;size:255;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
