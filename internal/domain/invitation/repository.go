package invitation

import (
	"context"

	"botram-go/internal/domain/member"
)

// Repository spans invitations and the membership row an acceptance
// transitions.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Get(ctx context.Context, invitationID string) (*Invitation, error)
	ListPending(ctx context.Context, customerID string) ([]Invitation, error)
	// Resolve marks a pending invitation as accepted/rejected and
	// deactivates it; it fails with ErrInvitationResolved when the row is
	// no longer pending.
	Resolve(ctx context.Context, invitationID string, status Status) error
	Delete(ctx context.Context, invitationID string) error
	GetOpenMember(ctx context.Context, groupID, customerID string) (*member.Member, error)
	UpdateMemberStatus(ctx context.Context, memberID string, from, to member.Status) error
	CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error)
	GroupIsOrdering(ctx context.Context, groupID string) (bool, error)
}
