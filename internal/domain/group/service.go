package group

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"botram-go/internal/domain/customer"
	"botram-go/internal/domain/invitation"
	"botram-go/internal/domain/member"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateGroupInput struct {
	CreatorID      string
	RestaurantID   string
	Name           string
	OpenMembership bool
	InviteeIDs     []string
}

// CreateGroup creates the group, admits the creator as an ordering member
// and seeds memberships/invitations for every invitee according to that
// customer's join preference. The whole call is one transaction: an
// unresolvable invitee or a membership conflict aborts group creation.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*Group, error) {
	name := strings.TrimSpace(input.Name)
	if n := utf8.RuneCountInString(name); n < NameMinLength || n > NameMaxLength {
		return nil, ErrInvalidName
	}

	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.RestaurantExists(ctx, input.RestaurantID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRestaurantNotFound
		}

		count, err := tx.CountActiveMembershipsByCustomer(ctx, input.CreatorID)
		if err != nil {
			return err
		}
		if count > 0 {
			return member.ErrAlreadyInActiveGroup
		}

		g := Group{
			ID:             uuid.NewString(),
			RestaurantID:   input.RestaurantID,
			CreatorID:      input.CreatorID,
			Name:           name,
			OpenMembership: input.OpenMembership,
			Status:         StatusOrdering,
		}
		if err := tx.Create(ctx, &g); err != nil {
			return err
		}

		if err := tx.CreateMember(ctx, &member.Member{
			ID:         uuid.NewString(),
			GroupID:    g.ID,
			CustomerID: input.CreatorID,
			Status:     member.StatusOrdering,
		}); err != nil {
			return err
		}

		seen := map[string]struct{}{input.CreatorID: {}}
		for _, inviteeID := range input.InviteeIDs {
			inviteeID = strings.TrimSpace(inviteeID)
			if inviteeID == "" {
				continue
			}
			if _, ok := seen[inviteeID]; ok {
				continue
			}
			seen[inviteeID] = struct{}{}

			invitee, err := tx.GetCustomer(ctx, inviteeID)
			if err != nil {
				return err
			}

			if err := s.admitInvitee(ctx, tx, &g, invitee); err != nil {
				return err
			}
		}

		result = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) admitInvitee(ctx context.Context, tx Repository, g *Group, invitee *customer.Customer) error {
	switch invitee.JoinPreference {
	case customer.JoinBySelf:
		// No membership: the customer joins open groups on their own.
		return nil

	case customer.JoinDirectly:
		count, err := tx.CountActiveMembershipsByCustomer(ctx, invitee.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return member.ErrAlreadyInActiveGroup
		}
		return tx.CreateMember(ctx, &member.Member{
			ID:         uuid.NewString(),
			GroupID:    g.ID,
			CustomerID: invitee.ID,
			Status:     member.StatusOrdering,
		})

	default:
		if err := tx.CreateMember(ctx, &member.Member{
			ID:         uuid.NewString(),
			GroupID:    g.ID,
			CustomerID: invitee.ID,
			Status:     member.StatusNotJoined,
		}); err != nil {
			return err
		}
		return tx.CreateInvitation(ctx, &invitation.Invitation{
			ID:         uuid.NewString(),
			GroupID:    g.ID,
			CustomerID: invitee.ID,
			Status:     invitation.StatusNoResponse,
			IsActive:   true,
		})
	}
}

// OpenJoin admits a customer directly into a group with open membership
// that is still ordering. A group that is closed or past ordering is not
// visible to joiners, hence not found.
func (s *Service) OpenJoin(ctx context.Context, groupID, customerID string) (*member.Member, error) {
	var result member.Member
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		g, err := tx.Get(ctx, groupID)
		if err != nil {
			return err
		}
		if !g.OpenMembership || g.Status != StatusOrdering {
			return ErrGroupNotFound
		}

		if _, err := tx.GetOpenMember(ctx, groupID, customerID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, member.ErrMemberNotFound) {
			return err
		}

		count, err := tx.CountActiveMembershipsByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if count > 0 {
			return member.ErrAlreadyInActiveGroup
		}

		m := member.Member{
			ID:         uuid.NewString(),
			GroupID:    groupID,
			CustomerID: customerID,
			Status:     member.StatusOrdering,
		}
		if err := tx.CreateMember(ctx, &m); err != nil {
			return err
		}

		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Get returns a group to one of its non-terminal members.
func (s *Service) Get(ctx context.Context, groupID, customerID string) (*Group, error) {
	g, err := s.repo.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetOpenMember(ctx, groupID, customerID); err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Group, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
