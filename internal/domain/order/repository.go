package order

import (
	"context"

	"botram-go/internal/domain/cart"
	"botram-go/internal/domain/catalog"
	"botram-go/internal/domain/group"
	"botram-go/internal/domain/member"
)

// Repository spans every table finalization touches. The ForUpdate
// variants take row locks so that concurrent finalizations or order-accept
// flows against the same stock serialize; they are only meaningful inside
// Transaction.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetGroupForUpdate(ctx context.Context, groupID string) (*group.Group, error)
	UpdateGroupStatus(ctx context.Context, groupID string, from, to group.Status) error

	ListMembersByStatusForUpdate(ctx context.Context, groupID string, status member.Status) ([]member.Member, error)
	UpdateMemberStatus(ctx context.Context, memberID string, from, to member.Status) error

	ListCartLines(ctx context.Context, groupID, memberID string) ([]cart.Line, error)

	GetItemForUpdate(ctx context.Context, itemID string) (*catalog.Item, error)
	GetCompositeForUpdate(ctx context.Context, customMenuID string) (*catalog.Composite, error)
	DecrementItemStock(ctx context.Context, itemID string, quantity int) error
	DecrementIngredientStock(ctx context.Context, ingredientID string, quantity int) error

	CreateOrder(ctx context.Context, o *Order) error
	CreateOrderLines(ctx context.Context, lines []Line) error
	CreateMemberOrder(ctx context.Context, mo *MemberOrder) error
	CreateGroupOrder(ctx context.Context, aggregate *GroupOrder) error

	GetGroupOrder(ctx context.Context, groupID string) (*GroupOrder, error)
	ListMemberOrderRows(ctx context.Context, groupID string) ([]MemberOrderRow, error)
	HasOpenMember(ctx context.Context, groupID, customerID string) (bool, error)
}
