package invitation

import (
	"context"
	"errors"
	"testing"

	"botram-go/internal/domain/member"
)

type fakeInvitationRepo struct {
	invitations map[string]*Invitation
	members     map[string]*member.Member
	ordering    map[string]bool
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		invitations: make(map[string]*Invitation),
		members:     make(map[string]*member.Member),
		ordering:    make(map[string]bool),
	}
}

func (r *fakeInvitationRepo) snapshot() (map[string]*Invitation, map[string]*member.Member) {
	invs := make(map[string]*Invitation, len(r.invitations))
	for k, v := range r.invitations {
		copied := *v
		invs[k] = &copied
	}
	members := make(map[string]*member.Member, len(r.members))
	for k, v := range r.members {
		copied := *v
		members[k] = &copied
	}
	return invs, members
}

func (r *fakeInvitationRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	invs, members := r.snapshot()
	if err := fn(r); err != nil {
		r.invitations = invs
		r.members = members
		return err
	}
	return nil
}

func (r *fakeInvitationRepo) Get(ctx context.Context, invitationID string) (*Invitation, error) {
	inv, ok := r.invitations[invitationID]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvitationRepo) ListPending(ctx context.Context, customerID string) ([]Invitation, error) {
	result := make([]Invitation, 0)
	for _, inv := range r.invitations {
		if inv.CustomerID == customerID && inv.Pending() {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) Resolve(ctx context.Context, invitationID string, status Status) error {
	inv, ok := r.invitations[invitationID]
	if !ok || !inv.Pending() {
		return ErrInvitationResolved
	}
	inv.Status = status
	inv.IsActive = false
	return nil
}

func (r *fakeInvitationRepo) Delete(ctx context.Context, invitationID string) error {
	delete(r.invitations, invitationID)
	return nil
}

func (r *fakeInvitationRepo) GetOpenMember(ctx context.Context, groupID, customerID string) (*member.Member, error) {
	for _, m := range r.members {
		if m.GroupID == groupID && m.CustomerID == customerID && !m.Status.Terminal() {
			copied := *m
			return &copied, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (r *fakeInvitationRepo) UpdateMemberStatus(ctx context.Context, memberID string, from, to member.Status) error {
	m, ok := r.members[memberID]
	if !ok || m.Status != from {
		return member.ErrStatusConflict
	}
	m.Status = to
	return nil
}

func (r *fakeInvitationRepo) CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	for _, m := range r.members {
		if m.CustomerID == customerID && m.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *fakeInvitationRepo) GroupIsOrdering(ctx context.Context, groupID string) (bool, error) {
	return r.ordering[groupID], nil
}

func seedInvitation(r *fakeInvitationRepo) {
	r.ordering["g-1"] = true
	r.invitations["inv-1"] = &Invitation{ID: "inv-1", GroupID: "g-1", CustomerID: "c-1", Status: StatusNoResponse, IsActive: true}
	r.members["m-1"] = &member.Member{ID: "m-1", GroupID: "g-1", CustomerID: "c-1", Status: member.StatusNotJoined}
}

func TestAcceptInvitation(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)

	svc := NewService(repo)
	m, err := svc.Accept(context.Background(), "inv-1", "c-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Status != member.StatusOrdering {
		t.Fatalf("expected ORDERING, got %s", m.Status)
	}
	inv := repo.invitations["inv-1"]
	if inv.Status != StatusAccepted || inv.IsActive {
		t.Fatalf("expected resolved invitation, got %+v", inv)
	}
	if repo.members["m-1"].Status != member.StatusOrdering {
		t.Fatalf("membership not transitioned, got %s", repo.members["m-1"].Status)
	}
}

func TestAcceptWrongCustomer(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)

	svc := NewService(repo)
	if _, err := svc.Accept(context.Background(), "inv-1", "c-2"); !errors.Is(err, ErrNotInvitee) {
		t.Fatalf("expected ErrNotInvitee, got %v", err)
	}
}

func TestAcceptResolvedInvitation(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)
	repo.invitations["inv-1"].Status = StatusRejected
	repo.invitations["inv-1"].IsActive = false

	svc := NewService(repo)
	if _, err := svc.Accept(context.Background(), "inv-1", "c-1"); !errors.Is(err, ErrInvitationResolved) {
		t.Fatalf("expected ErrInvitationResolved, got %v", err)
	}
}

func TestAcceptGroupNoLongerOrdering(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)
	repo.ordering["g-1"] = false

	svc := NewService(repo)
	if _, err := svc.Accept(context.Background(), "inv-1", "c-1"); !errors.Is(err, member.ErrGroupNotOrdering) {
		t.Fatalf("expected ErrGroupNotOrdering, got %v", err)
	}
	if !repo.invitations["inv-1"].Pending() {
		t.Fatalf("invitation should stay pending")
	}
}

func TestAcceptWhileActiveElsewhere(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)
	repo.members["m-2"] = &member.Member{ID: "m-2", GroupID: "g-2", CustomerID: "c-1", Status: member.StatusOrdering}

	svc := NewService(repo)
	if _, err := svc.Accept(context.Background(), "inv-1", "c-1"); !errors.Is(err, member.ErrAlreadyInActiveGroup) {
		t.Fatalf("expected ErrAlreadyInActiveGroup, got %v", err)
	}
	if repo.members["m-1"].Status != member.StatusNotJoined {
		t.Fatalf("membership should be unchanged")
	}
	if !repo.invitations["inv-1"].Pending() {
		t.Fatalf("invitation should stay pending")
	}
}

func TestAcceptWithMissingMembershipDeletesInvitation(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)
	delete(repo.members, "m-1")

	svc := NewService(repo)
	_, err := svc.Accept(context.Background(), "inv-1", "c-1")
	if !errors.Is(err, member.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if _, ok := repo.invitations["inv-1"]; ok {
		t.Fatalf("dangling invitation should be deleted")
	}
}

func TestRejectInvitation(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)

	svc := NewService(repo)
	if err := svc.Reject(context.Background(), "inv-1", "c-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	inv := repo.invitations["inv-1"]
	if inv.Status != StatusRejected || inv.IsActive {
		t.Fatalf("expected rejected inactive invitation, got %+v", inv)
	}
	if repo.members["m-1"].Status != member.StatusNotJoined {
		t.Fatalf("rejection must not touch the membership")
	}
}

func TestRejectTwice(t *testing.T) {
	repo := newFakeInvitationRepo()
	seedInvitation(repo)

	svc := NewService(repo)
	if err := svc.Reject(context.Background(), "inv-1", "c-1"); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	if err := svc.Reject(context.Background(), "inv-1", "c-1"); !errors.Is(err, ErrInvitationResolved) {
		t.Fatalf("expected ErrInvitationResolved, got %v", err)
	}
}

func TestListPendingFiltersResolved(t *testing.T) {
	repo := newFakeInvitationRepo()
	repo.invitations["inv-1"] = &Invitation{ID: "inv-1", GroupID: "g-1", CustomerID: "c-1", Status: StatusNoResponse, IsActive: true}
	repo.invitations["inv-2"] = &Invitation{ID: "inv-2", GroupID: "g-2", CustomerID: "c-1", Status: StatusRejected, IsActive: false}
	repo.invitations["inv-3"] = &Invitation{ID: "inv-3", GroupID: "g-3", CustomerID: "c-2", Status: StatusNoResponse, IsActive: true}

	svc := NewService(repo)
	pending, err := svc.ListPending(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "inv-1" {
		t.Fatalf("expected only inv-1, got %+v", pending)
	}
}
