package course

import "context"

// Repository is the course catalog store. GetBySlug loads lessons eagerly;
// the slug is the public identifier used by every student-facing route.
type Repository interface {
	Create(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, publishedOnly bool) ([]*Course, error)
}
