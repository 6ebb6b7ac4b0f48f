package cart

import (
	"context"

	"botram-go/internal/domain/member"
)

// Repository spans cart lines and the membership row cart access is
// authorized against. Owned variants match lines through the owning
// member's customer id, never a client-supplied member id.
type Repository interface {
	CreateLine(ctx context.Context, line *Line) error
	GetLineOwned(ctx context.Context, lineID, customerID string) (*Line, error)
	UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error
	DeleteLineOwned(ctx context.Context, lineID, customerID string) (int64, error)
	DeleteLinesOwned(ctx context.Context, lineIDs []string, customerID string) (int64, error)
	ListByMember(ctx context.Context, groupID, memberID string) ([]Line, error)
	GetOpenMember(ctx context.Context, groupID, customerID string) (*member.Member, error)
}
