package group

import (
	"context"

	"botram-go/internal/domain/customer"
	"botram-go/internal/domain/invitation"
	"botram-go/internal/domain/member"
)

// Repository spans the tables group creation touches: groups plus the
// membership and invitation rows seeded alongside, and customer lookups
// for invitee resolution.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, g *Group) error
	Get(ctx context.Context, groupID string) (*Group, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Group, error)
	// UpdateStatus applies from -> to conditionally; it fails with
	// ErrStatusConflict when the row is no longer in the expected status.
	UpdateStatus(ctx context.Context, groupID string, from, to Status) error
	RestaurantExists(ctx context.Context, restaurantID string) (bool, error)
	GetCustomer(ctx context.Context, customerID string) (*customer.Customer, error)
	CreateMember(ctx context.Context, m *member.Member) error
	GetOpenMember(ctx context.Context, groupID, customerID string) (*member.Member, error)
	CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error)
	CreateInvitation(ctx context.Context, inv *invitation.Invitation) error
}
