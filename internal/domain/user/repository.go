package user

import "context"

// Repository is the external user store. It is the source of truth for the
// role embedded into session tokens at issuance time.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)
}
