package member

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Exit lets a member leave a group they are still ordering in. Leaving is
// blocked once the group order exists: the member's order is already part
// of the finalized aggregate.
func (s *Service) Exit(ctx context.Context, groupID, customerID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		m, err := tx.GetOpenByGroupAndCustomer(ctx, groupID, customerID)
		if err != nil {
			return err
		}
		if !CanTransition(m.Status, StatusExit) {
			return ErrInvalidTransition
		}

		finalized, err := tx.GroupOrderExists(ctx, groupID)
		if err != nil {
			return err
		}
		if finalized {
			return ErrGroupAlreadyFinalized
		}

		return tx.UpdateStatus(ctx, m.ID, m.Status, StatusExit)
	})
}

// Expel removes a member from the group. Only the group admin may do this,
// and only while the group itself is still ordering.
func (s *Service) Expel(ctx context.Context, groupID, adminID, memberID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		ref, err := tx.GetGroupRef(ctx, groupID)
		if err != nil {
			return err
		}
		if ref.CreatorID != adminID {
			return ErrNotGroupAdmin
		}
		if !ref.Ordering {
			return ErrGroupNotOrdering
		}

		m, err := tx.Get(ctx, memberID)
		if err != nil {
			return err
		}
		if m.GroupID != groupID {
			return ErrMemberNotFound
		}
		if m.CustomerID == ref.CreatorID {
			return ErrCannotExpelAdmin
		}
		if !CanTransition(m.Status, StatusExpelled) {
			return ErrInvalidTransition
		}

		return tx.UpdateStatus(ctx, m.ID, m.Status, StatusExpelled)
	})
}

// ListByGroup returns the group's members to a customer who holds a
// non-terminal membership in that group.
func (s *Service) ListByGroup(ctx context.Context, groupID, customerID string) ([]Member, error) {
	if _, err := s.repo.GetOpenByGroupAndCustomer(ctx, groupID, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID)
}

func (s *Service) CountActive(ctx context.Context, groupID string) (int64, error) {
	return s.repo.CountActive(ctx, groupID)
}
