package member

import "context"

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	// Create returns ErrCodeTaken when the code collides with an existing
	// member and ErrEmailTaken when the email does. The uniqueness constraint
	// on the code column, not the caller's pre-check, is the source of truth.
	Create(ctx context.Context, m *Member) error
	CodeExists(ctx context.Context, code string) (bool, error)
	UpdateActive(ctx context.Context, code string, active bool) error
}
