package confirmation

import (
	"context"
	"time"

	"kinship-app-go/internal/domain/tree"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// GetForUpdate locks the request row for the rest of the transaction so
	// racing resolutions serialize on it.
	GetForUpdate(ctx context.Context, id string) (*ConfirmationRequest, error)
	GetByID(ctx context.Context, id string) (*ConfirmationRequest, error)
	FindPending(ctx context.Context, childCode, parentRole string) (*ConfirmationRequest, error)
	// Create returns ErrDuplicatePending when a pending request already holds
	// the (child, parent_role) slot.
	Create(ctx context.Context, req *ConfirmationRequest) error
	SetStatus(ctx context.Context, id, status string, resolvedAt time.Time) error
	ListPending(ctx context.Context) ([]ConfirmationRequest, error)

	// Edges exposes the family graph bound to the same transaction, so a
	// confirmation and its edge commit or roll back together.
	Edges() tree.Repository
}
