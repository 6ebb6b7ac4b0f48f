package member

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Get(ctx context.Context, memberID string) (*Member, error)
	GetOpenByGroupAndCustomer(ctx context.Context, groupID, customerID string) (*Member, error)
	ListByGroup(ctx context.Context, groupID string) ([]Member, error)
	Create(ctx context.Context, member *Member) error
	// UpdateStatus applies from -> to conditionally; it fails with
	// ErrStatusConflict when the row is no longer in the expected status.
	UpdateStatus(ctx context.Context, memberID string, from, to Status) error
	CountActive(ctx context.Context, groupID string) (int64, error)
	CountActiveByCustomer(ctx context.Context, customerID string) (int64, error)
	GetGroupRef(ctx context.Context, groupID string) (*GroupRef, error)
	GroupOrderExists(ctx context.Context, groupID string) (bool, error)
}
