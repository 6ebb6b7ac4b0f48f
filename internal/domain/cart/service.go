package cart

import (
	"context"

	"botram-go/internal/domain/catalog"
	"botram-go/internal/domain/member"
	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	catalog catalog.Catalog
}

func NewService(repo Repository, cat catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: cat}
}

// resolved is the live catalog view of a line's item.
type resolved struct {
	name        string
	unitPrice   int64
	maxQuantity int
}

func (s *Service) resolve(ctx context.Context, menuItemID, customMenuID *string) (*resolved, error) {
	if menuItemID != nil {
		item, err := s.catalog.GetItem(ctx, *menuItemID)
		if err != nil {
			return nil, err
		}
		return &resolved{name: item.Name, unitPrice: item.Price, maxQuantity: item.Stock}, nil
	}

	composite, err := s.catalog.GetComposite(ctx, *customMenuID)
	if err != nil {
		return nil, err
	}
	return &resolved{
		name:        composite.Name,
		unitPrice:   composite.Price(),
		maxQuantity: composite.MaxQuantity(),
	}, nil
}

// AddItem appends a line to the member's cart after an advisory stock
// check. The check prevents obviously invalid carts early but reserves
// nothing; the binding check happens at finalization.
func (s *Service) AddItem(ctx context.Context, groupID, customerID string, ref ItemRef, quantity int, wrapped bool, spiceLevel *int) (*MutationResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if !ref.valid() {
		return nil, ErrInvalidItemRef
	}

	m, err := s.repo.GetOpenMember(ctx, groupID, customerID)
	if err != nil {
		return nil, err
	}
	if m.Status != member.StatusOrdering {
		return nil, ErrMemberNotOrdering
	}

	line := Line{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		MemberID:   m.ID,
		Quantity:   quantity,
		Wrapped:    wrapped,
		SpiceLevel: spiceLevel,
	}
	if ref.MenuItemID != "" {
		line.MenuItemID = &ref.MenuItemID
	} else {
		line.CustomMenuID = &ref.CustomMenuID
	}

	res, err := s.resolve(ctx, line.MenuItemID, line.CustomMenuID)
	if err != nil {
		return nil, err
	}
	if quantity > res.maxQuantity {
		return nil, catalog.ErrOutOfStock
	}

	if err := s.repo.CreateLine(ctx, &line); err != nil {
		return nil, err
	}

	return &MutationResult{
		Line:                 line,
		ItemName:             res.name,
		UnitPrice:            res.unitPrice,
		IsAvailableToAddMore: quantity+1 <= res.maxQuantity,
	}, nil
}

// UpdateQuantity rechecks the new quantity against current stock and
// reports whether a further increase would still fit.
func (s *Service) UpdateQuantity(ctx context.Context, lineID, customerID string, quantity int) (*MutationResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line, err := s.repo.GetLineOwned(ctx, lineID, customerID)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetOpenMember(ctx, line.GroupID, customerID)
	if err != nil {
		return nil, err
	}
	if m.Status != member.StatusOrdering {
		return nil, ErrMemberNotOrdering
	}

	res, err := s.resolve(ctx, line.MenuItemID, line.CustomMenuID)
	if err != nil {
		return nil, err
	}
	if quantity > res.maxQuantity {
		return nil, catalog.ErrOutOfStock
	}

	if err := s.repo.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
		return nil, err
	}
	line.Quantity = quantity

	return &MutationResult{
		Line:                 *line,
		ItemName:             res.name,
		UnitPrice:            res.unitPrice,
		IsAvailableToAddMore: quantity+1 <= res.maxQuantity,
	}, nil
}

// RemoveItem deletes a single owned line.
func (s *Service) RemoveItem(ctx context.Context, lineID, customerID string) error {
	removed, err := s.repo.DeleteLineOwned(ctx, lineID, customerID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrLineNotFound
	}
	return nil
}

// BulkRemove deletes the owned subset of the given lines and returns how
// many were actually removed; ids the caller does not own are skipped.
func (s *Service) BulkRemove(ctx context.Context, lineIDs []string, customerID string) (int64, error) {
	ids := make([]string, 0, len(lineIDs))
	seen := make(map[string]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	return s.repo.DeleteLinesOwned(ctx, ids, customerID)
}

// ListByGroup returns the calling member's current lines joined with live
// catalog names and prices for display.
func (s *Service) ListByGroup(ctx context.Context, groupID, customerID string) ([]LineView, error) {
	m, err := s.repo.GetOpenMember(ctx, groupID, customerID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ListByMember(ctx, groupID, m.ID)
	if err != nil {
		return nil, err
	}

	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		res, err := s.resolve(ctx, line.MenuItemID, line.CustomMenuID)
		if err != nil {
			return nil, err
		}
		views = append(views, LineView{
			Line:      line,
			ItemName:  res.name,
			UnitPrice: res.unitPrice,
			Subtotal:  res.unitPrice * int64(line.Quantity),
		})
	}

	return views, nil
}
