package invitation

import (
	"context"
	"errors"

	"botram-go/internal/domain/member"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Accept resolves a pending invitation and transitions the linked
// membership to ORDERING as one atomic step. If the linked membership is
// missing (data inconsistency), the invitation itself is deleted so that no
// accepted invitation exists without a membership, and the member-not-found
// error is surfaced.
func (s *Service) Accept(ctx context.Context, invitationID, customerID string) (*member.Member, error) {
	var result member.Member
	var inconsistency error

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inv, err := tx.Get(ctx, invitationID)
		if err != nil {
			return err
		}
		if inv.CustomerID != customerID {
			return ErrNotInvitee
		}
		if !inv.Pending() {
			return ErrInvitationResolved
		}

		ordering, err := tx.GroupIsOrdering(ctx, inv.GroupID)
		if err != nil {
			return err
		}
		if !ordering {
			return member.ErrGroupNotOrdering
		}

		count, err := tx.CountActiveMembershipsByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if count > 0 {
			return member.ErrAlreadyInActiveGroup
		}

		m, err := tx.GetOpenMember(ctx, inv.GroupID, customerID)
		if errors.Is(err, member.ErrMemberNotFound) {
			// The deletion must survive, so commit it and report the
			// inconsistency after the transaction.
			inconsistency = member.ErrMemberNotFound
			return tx.Delete(ctx, inv.ID)
		}
		if err != nil {
			return err
		}

		if !member.CanTransition(m.Status, member.StatusOrdering) {
			return member.ErrInvalidTransition
		}

		if err := tx.Resolve(ctx, inv.ID, StatusAccepted); err != nil {
			return err
		}
		if err := tx.UpdateMemberStatus(ctx, m.ID, m.Status, member.StatusOrdering); err != nil {
			return err
		}

		m.Status = member.StatusOrdering
		result = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if inconsistency != nil {
		return nil, inconsistency
	}

	return &result, nil
}

// Reject resolves a pending invitation without touching the membership.
func (s *Service) Reject(ctx context.Context, invitationID, customerID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		inv, err := tx.Get(ctx, invitationID)
		if err != nil {
			return err
		}
		if inv.CustomerID != customerID {
			return ErrNotInvitee
		}
		if !inv.Pending() {
			return ErrInvitationResolved
		}

		return tx.Resolve(ctx, inv.ID, StatusRejected)
	})
}

func (s *Service) ListPending(ctx context.Context, customerID string) ([]Invitation, error) {
	return s.repo.ListPending(ctx, customerID)
}
