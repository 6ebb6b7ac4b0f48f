package order

import (
	"context"
	"fmt"

	"botram-go/internal/domain/cart"
	"botram-go/internal/domain/catalog"
	"botram-go/internal/domain/group"
	"botram-go/internal/domain/member"
	"botram-go/internal/domain/notification"
	"botram-go/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	notifier notification.Notifier
	log      logger.Logger
}

func NewService(repo Repository, notifier notification.Notifier, log logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, log: log}
}

// Finalize converts every ordering member's cart into an immutable priced
// order, aggregates them into one group order and advances the group to
// ALL_ORDER_READY. The whole step runs in one transaction: any
// insufficient-stock or missing-item line aborts everything, leaving no
// member transitioned and no orders created. Stock and prices are
// re-validated against the catalog under row locks; add-time figures are
// never trusted.
func (s *Service) Finalize(ctx context.Context, groupID, adminID string) (*GroupOrder, error) {
	var result GroupOrder
	var groupName string
	var notifyCustomers []string

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		g, err := tx.GetGroupForUpdate(ctx, groupID)
		if err != nil {
			return err
		}
		if g.CreatorID != adminID {
			return member.ErrNotGroupAdmin
		}
		if g.Status != group.StatusOrdering {
			return member.ErrGroupNotOrdering
		}
		groupName = g.Name

		members, err := tx.ListMembersByStatusForUpdate(ctx, groupID, member.StatusOrdering)
		if err != nil {
			return err
		}

		var totalAmount int64
		var orderCount int

		for _, m := range members {
			lines, err := tx.ListCartLines(ctx, groupID, m.ID)
			if err != nil {
				return err
			}

			// A member who never placed anything is expelled rather than
			// blocking the whole group.
			if len(lines) == 0 {
				if err := tx.UpdateMemberStatus(ctx, m.ID, member.StatusOrdering, member.StatusExpelled); err != nil {
					return err
				}
				continue
			}

			orderTotal, orderLines, err := s.freezeLines(ctx, tx, lines)
			if err != nil {
				return err
			}

			o := Order{
				ID:           uuid.NewString(),
				CustomerID:   m.CustomerID,
				RestaurantID: g.RestaurantID,
				IsGroup:      true,
				Total:        orderTotal,
				Status:       StatusCreated,
			}
			if err := tx.CreateOrder(ctx, &o); err != nil {
				return err
			}
			for i := range orderLines {
				orderLines[i].OrderID = o.ID
			}
			if err := tx.CreateOrderLines(ctx, orderLines); err != nil {
				return err
			}
			if err := tx.CreateMemberOrder(ctx, &MemberOrder{
				MemberID: m.ID,
				OrderID:  o.ID,
				GroupID:  groupID,
			}); err != nil {
				return err
			}
			if err := tx.UpdateMemberStatus(ctx, m.ID, member.StatusOrdering, member.StatusOrderReady); err != nil {
				return err
			}

			totalAmount += orderTotal
			orderCount++
			notifyCustomers = append(notifyCustomers, m.CustomerID)
		}

		if orderCount == 0 {
			return ErrNothingToFinalize
		}

		aggregate := GroupOrder{
			ID:           uuid.NewString(),
			GroupID:      groupID,
			RestaurantID: g.RestaurantID,
			TotalAmount:  totalAmount,
			Status:       StatusCreated,
		}
		if err := tx.CreateGroupOrder(ctx, &aggregate); err != nil {
			return err
		}
		if err := tx.UpdateGroupStatus(ctx, groupID, group.StatusOrdering, group.StatusAllOrderReady); err != nil {
			return err
		}

		result = aggregate
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: the transaction has committed, notification failures are
	// logged and dropped.
	title := "Botram order placed"
	description := fmt.Sprintf("Your order for group %q has been sent to the restaurant", groupName)
	for _, customerID := range notifyCustomers {
		if err := s.notifier.Notify(ctx, customerID, title, description); err != nil {
			s.log.BusinessError("order.finalize: notify failed", err, "customer_id", customerID, "group_id", groupID)
		}
	}

	return &result, nil
}

// freezeLines re-resolves every line against the catalog under row locks,
// consumes stock and copies current names and prices into immutable order
// lines. Because each lookup re-reads the locked row, repeated lines for
// the same item see the already-consumed stock, so combined demand within
// the group cannot oversell.
func (s *Service) freezeLines(ctx context.Context, tx Repository, lines []cart.Line) (int64, []Line, error) {
	var total int64
	frozen := make([]Line, 0, len(lines))

	for _, line := range lines {
		var itemName string
		var unitPrice int64

		switch {
		case line.MenuItemID != nil:
			item, err := tx.GetItemForUpdate(ctx, *line.MenuItemID)
			if err != nil {
				return 0, nil, err
			}
			if item.Stock < line.Quantity {
				return 0, nil, catalog.ErrOutOfStock
			}
			if err := tx.DecrementItemStock(ctx, item.ID, line.Quantity); err != nil {
				return 0, nil, err
			}
			itemName = item.Name
			unitPrice = item.Price

		case line.CustomMenuID != nil:
			composite, err := tx.GetCompositeForUpdate(ctx, *line.CustomMenuID)
			if err != nil {
				return 0, nil, err
			}
			for _, comp := range composite.Components {
				if comp.Stock < comp.Ratio*line.Quantity {
					return 0, nil, catalog.ErrOutOfStock
				}
			}
			for _, comp := range composite.Components {
				if err := tx.DecrementIngredientStock(ctx, comp.IngredientID, comp.Ratio*line.Quantity); err != nil {
					return 0, nil, err
				}
			}
			itemName = composite.Name
			unitPrice = composite.Price()

		default:
			return 0, nil, catalog.ErrItemNotFound
		}

		frozen = append(frozen, Line{
			ID:         uuid.NewString(),
			ItemName:   itemName,
			UnitPrice:  unitPrice,
			Quantity:   line.Quantity,
			Wrapped:    line.Wrapped,
			SpiceLevel: line.SpiceLevel,
		})
		total += unitPrice * int64(line.Quantity)
	}

	return total, frozen, nil
}

// ListGroupOrders is the admin-dashboard view: every member of the group
// with the order their cart produced, visible to any non-terminal member.
func (s *Service) ListGroupOrders(ctx context.Context, groupID, customerID string) ([]MemberOrderRow, error) {
	ok, err := s.repo.HasOpenMember(ctx, groupID, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	return s.repo.ListMemberOrderRows(ctx, groupID)
}

// GetGroupOrder returns the finalized aggregate to a member of the group.
func (s *Service) GetGroupOrder(ctx context.Context, groupID, customerID string) (*GroupOrder, error) {
	ok, err := s.repo.HasOpenMember(ctx, groupID, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	return s.repo.GetGroupOrder(ctx, groupID)
}
