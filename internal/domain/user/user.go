package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coursekit/internal/shared/authorization"
	"coursekit/internal/shared/biztime"
)

// Status is the account state. Disabled users cannot log in through any
// channel.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusDisabled
}

// User is a platform account. The email is the human-readable identity and
// is stored lower-cased; the external checkout flow creates students, the
// back-office creates admins.
type User struct {
	ID           uint
	Email        string
	Name         string
	Role         authorization.UserRole
	Status       Status
	PasswordHash string // empty for magic-link-only accounts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var titleCaser = cases.Title(language.English)

// NewUser builds a user with a normalized email and display name.
func NewUser(email, name string, role authorization.UserRole) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		Email:     normalized,
		Name:      NormalizeName(name),
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeEmail lower-cases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", fmt.Errorf("invalid email address: %s", email)
	}
	return normalized, nil
}

// NormalizeName trims and title-cases a display name. Empty names are kept
// empty; students created at checkout often have none.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// CanPasswordLogin reports whether the account may use the password login
// path. Students authenticate with magic links only.
func (u *User) CanPasswordLogin() bool {
	return u.Role.IsAdmin() && u.PasswordHash != ""
}

func (u *User) Disable() {
	u.Status = StatusDisabled
	u.UpdatedAt = biztime.NowUTC()
}

func (u *User) Enable() {
	u.Status = StatusActive
	u.UpdatedAt = biztime.NowUTC()
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.Role = role
	u.UpdatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Rename(name string) {
	u.Name = NormalizeName(name)
	u.UpdatedAt = biztime.NowUTC()
}

func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.UpdatedAt = biztime.NowUTC()
}
