package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  UserRole
	}{
		{"admin", "admin", RoleAdmin},
		{"student", "student", RoleStudent},
		{"unknown falls back to student", "superuser", RoleStudent},
		{"empty falls back to student", "", RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserRole(tt.input))
		})
	}
}

func TestUserRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleStudent.IsAdmin())
	assert.False(t, UserRole("").IsAdmin())
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, UserRole("owner").IsValid())
}
