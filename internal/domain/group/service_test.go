package group

import (
	"context"
	"errors"
	"strings"
	"testing"

	"botram-go/internal/domain/customer"
	"botram-go/internal/domain/invitation"
	"botram-go/internal/domain/member"
)

type fakeGroupRepo struct {
	groups      map[string]*Group
	members     map[string]*member.Member
	invitations map[string]*invitation.Invitation
	customers   map[string]*customer.Customer
	restaurants map[string]bool
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:      make(map[string]*Group),
		members:     make(map[string]*member.Member),
		invitations: make(map[string]*invitation.Invitation),
		customers:   make(map[string]*customer.Customer),
		restaurants: make(map[string]bool),
	}
}

func (r *fakeGroupRepo) snapshot() *fakeGroupRepo {
	clone := newFakeGroupRepo()
	for k, v := range r.groups {
		g := *v
		clone.groups[k] = &g
	}
	for k, v := range r.members {
		m := *v
		clone.members[k] = &m
	}
	for k, v := range r.invitations {
		i := *v
		clone.invitations[k] = &i
	}
	for k, v := range r.customers {
		c := *v
		clone.customers[k] = &c
	}
	for k, v := range r.restaurants {
		clone.restaurants[k] = v
	}
	return clone
}

func (r *fakeGroupRepo) restore(from *fakeGroupRepo) {
	r.groups = from.groups
	r.members = from.members
	r.invitations = from.invitations
	r.customers = from.customers
	r.restaurants = from.restaurants
}

func (r *fakeGroupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	before := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(before)
		return err
	}
	return nil
}

func (r *fakeGroupRepo) Create(ctx context.Context, g *Group) error {
	copied := *g
	r.groups[g.ID] = &copied
	return nil
}

func (r *fakeGroupRepo) Get(ctx context.Context, groupID string) (*Group, error) {
	g, ok := r.groups[groupID]
	if !ok {
		return nil, ErrGroupNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGroupRepo) ListByCustomer(ctx context.Context, customerID string) ([]Group, error) {
	result := make([]Group, 0)
	for _, m := range r.members {
		if m.CustomerID != customerID || m.Status.Terminal() {
			continue
		}
		if g, ok := r.groups[m.GroupID]; ok {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (r *fakeGroupRepo) UpdateStatus(ctx context.Context, groupID string, from, to Status) error {
	g, ok := r.groups[groupID]
	if !ok || g.Status != from {
		return ErrStatusConflict
	}
	g.Status = to
	return nil
}

func (r *fakeGroupRepo) RestaurantExists(ctx context.Context, restaurantID string) (bool, error) {
	return r.restaurants[restaurantID], nil
}

func (r *fakeGroupRepo) GetCustomer(ctx context.Context, customerID string) (*customer.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeGroupRepo) CreateMember(ctx context.Context, m *member.Member) error {
	copied := *m
	r.members[m.ID] = &copied
	return nil
}

func (r *fakeGroupRepo) GetOpenMember(ctx context.Context, groupID, customerID string) (*member.Member, error) {
	for _, m := range r.members {
		if m.GroupID == groupID && m.CustomerID == customerID && !m.Status.Terminal() {
			copied := *m
			return &copied, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (r *fakeGroupRepo) CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	for _, m := range r.members {
		if m.CustomerID == customerID && m.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupRepo) CreateInvitation(ctx context.Context, inv *invitation.Invitation) error {
	copied := *inv
	r.invitations[inv.ID] = &copied
	return nil
}

func (r *fakeGroupRepo) memberOf(groupID, customerID string) *member.Member {
	for _, m := range r.members {
		if m.GroupID == groupID && m.CustomerID == customerID {
			return m
		}
	}
	return nil
}

func (r *fakeGroupRepo) invitationOf(groupID, customerID string) *invitation.Invitation {
	for _, inv := range r.invitations {
		if inv.GroupID == groupID && inv.CustomerID == customerID {
			return inv
		}
	}
	return nil
}

func seedCustomer(r *fakeGroupRepo, id string, pref customer.JoinPreference) {
	r.customers[id] = &customer.Customer{ID: id, Name: "c-" + id, JoinPreference: pref}
}

func TestCreateGroupAdmitsByPreference(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.restaurants["resto-1"] = true
	seedCustomer(repo, "creator", customer.JoinByInvitation)
	seedCustomer(repo, "self", customer.JoinBySelf)
	seedCustomer(repo, "direct", customer.JoinDirectly)
	seedCustomer(repo, "invited", customer.JoinByInvitation)

	svc := NewService(repo)
	g, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "resto-1",
		Name:         "  makan siang  ",
		InviteeIDs:   []string{"self", "direct", "invited", "invited", "", "creator"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if g.Name != "makan siang" {
		t.Fatalf("expected trimmed name, got %q", g.Name)
	}
	if g.Status != StatusOrdering {
		t.Fatalf("expected ORDERING group, got %s", g.Status)
	}

	creator := repo.memberOf(g.ID, "creator")
	if creator == nil || creator.Status != member.StatusOrdering {
		t.Fatalf("expected creator ORDERING, got %+v", creator)
	}

	if m := repo.memberOf(g.ID, "self"); m != nil {
		t.Fatalf("BYSELF invitee should have no membership, got %+v", m)
	}
	if inv := repo.invitationOf(g.ID, "self"); inv != nil {
		t.Fatalf("BYSELF invitee should have no invitation, got %+v", inv)
	}

	direct := repo.memberOf(g.ID, "direct")
	if direct == nil || direct.Status != member.StatusOrdering {
		t.Fatalf("expected DIRECTLY invitee ORDERING, got %+v", direct)
	}
	if inv := repo.invitationOf(g.ID, "direct"); inv != nil {
		t.Fatalf("DIRECTLY invitee should have no invitation, got %+v", inv)
	}

	invited := repo.memberOf(g.ID, "invited")
	if invited == nil || invited.Status != member.StatusNotJoined {
		t.Fatalf("expected INVITATION invitee NOT_JOINED, got %+v", invited)
	}
	inv := repo.invitationOf(g.ID, "invited")
	if inv == nil || inv.Status != invitation.StatusNoResponse || !inv.IsActive {
		t.Fatalf("expected active NO_RESPONSE invitation, got %+v", inv)
	}
	if len(repo.invitations) != 1 {
		t.Fatalf("expected exactly one invitation, got %d", len(repo.invitations))
	}
}

func TestCreateGroupNameLength(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.restaurants["resto-1"] = true
	svc := NewService(repo)

	for _, name := range []string{"ab", strings.Repeat("x", 31), "   a  "} {
		_, err := svc.CreateGroup(context.Background(), CreateGroupInput{
			CreatorID:    "creator",
			RestaurantID: "resto-1",
			Name:         name,
		})
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}

	if _, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "resto-1",
		Name:         strings.Repeat("x", 30),
	}); err != nil {
		t.Fatalf("30 rune name should pass, got %v", err)
	}
}

func TestCreateGroupRestaurantNotFound(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)
	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "missing",
		Name:         "lunch",
	})
	if !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestCreateGroupCreatorAlreadyActive(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.restaurants["resto-1"] = true
	repo.groups["g-old"] = &Group{ID: "g-old", Status: StatusOrdering}
	repo.members["m-old"] = &member.Member{ID: "m-old", GroupID: "g-old", CustomerID: "creator", Status: member.StatusOrdering}

	svc := NewService(repo)
	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "resto-1",
		Name:         "lunch",
	})
	if !errors.Is(err, member.ErrAlreadyInActiveGroup) {
		t.Fatalf("expected ErrAlreadyInActiveGroup, got %v", err)
	}
	if len(repo.groups) != 1 {
		t.Fatalf("no group should be created, got %d", len(repo.groups))
	}
}

func TestCreateGroupUnknownInviteeAbortsAll(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.restaurants["resto-1"] = true
	seedCustomer(repo, "friend", customer.JoinByInvitation)

	svc := NewService(repo)
	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "resto-1",
		Name:         "lunch",
		InviteeIDs:   []string{"friend", "ghost"},
	})
	if !errors.Is(err, customer.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if len(repo.groups) != 0 || len(repo.members) != 0 || len(repo.invitations) != 0 {
		t.Fatalf("expected full rollback, got groups=%d members=%d invitations=%d",
			len(repo.groups), len(repo.members), len(repo.invitations))
	}
}

func TestCreateGroupDirectInviteeConflictAborts(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.restaurants["resto-1"] = true
	seedCustomer(repo, "direct", customer.JoinDirectly)
	repo.groups["g-old"] = &Group{ID: "g-old", Status: StatusOrdering}
	repo.members["m-old"] = &member.Member{ID: "m-old", GroupID: "g-old", CustomerID: "direct", Status: member.StatusOrderReady}

	svc := NewService(repo)
	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{
		CreatorID:    "creator",
		RestaurantID: "resto-1",
		Name:         "lunch",
		InviteeIDs:   []string{"direct"},
	})
	if !errors.Is(err, member.ErrAlreadyInActiveGroup) {
		t.Fatalf("expected ErrAlreadyInActiveGroup, got %v", err)
	}
	if len(repo.groups) != 1 {
		t.Fatalf("expected rollback of the new group, got %d groups", len(repo.groups))
	}
}

func TestOpenJoinSuccess(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", OpenMembership: true, Status: StatusOrdering}

	svc := NewService(repo)
	m, err := svc.OpenJoin(context.Background(), "g-1", "joiner")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Status != member.StatusOrdering {
		t.Fatalf("expected ORDERING, got %s", m.Status)
	}
	if repo.memberOf("g-1", "joiner") == nil {
		t.Fatalf("expected membership persisted")
	}
}

func TestOpenJoinClosedGroupLooksNotFound(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", OpenMembership: false, Status: StatusOrdering}
	repo.groups["g-2"] = &Group{ID: "g-2", OpenMembership: true, Status: StatusAllOrderReady}

	svc := NewService(repo)
	for _, groupID := range []string{"g-1", "g-2", "g-missing"} {
		if _, err := svc.OpenJoin(context.Background(), groupID, "joiner"); !errors.Is(err, ErrGroupNotFound) {
			t.Fatalf("group %s: expected ErrGroupNotFound, got %v", groupID, err)
		}
	}
}

func TestOpenJoinExistingMembership(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", OpenMembership: true, Status: StatusOrdering}
	repo.members["m-1"] = &member.Member{ID: "m-1", GroupID: "g-1", CustomerID: "joiner", Status: member.StatusNotJoined}

	svc := NewService(repo)
	_, err := svc.OpenJoin(context.Background(), "g-1", "joiner")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestOpenJoinActiveElsewhere(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", OpenMembership: true, Status: StatusOrdering}
	repo.groups["g-2"] = &Group{ID: "g-2", OpenMembership: true, Status: StatusOrdering}
	repo.members["m-1"] = &member.Member{ID: "m-1", GroupID: "g-2", CustomerID: "joiner", Status: member.StatusOrdering}

	svc := NewService(repo)
	_, err := svc.OpenJoin(context.Background(), "g-1", "joiner")
	if !errors.Is(err, member.ErrAlreadyInActiveGroup) {
		t.Fatalf("expected ErrAlreadyInActiveGroup, got %v", err)
	}
}

func TestOpenJoinAfterExitRejoins(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", OpenMembership: true, Status: StatusOrdering}
	repo.members["m-1"] = &member.Member{ID: "m-1", GroupID: "g-1", CustomerID: "joiner", Status: member.StatusExit}

	svc := NewService(repo)
	m, err := svc.OpenJoin(context.Background(), "g-1", "joiner")
	if err != nil {
		t.Fatalf("expected rejoin after exit, got %v", err)
	}
	if m.ID == "m-1" {
		t.Fatalf("expected a fresh membership row")
	}
}

func TestGetVisibleToMembersOnly(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups["g-1"] = &Group{ID: "g-1", Name: "lunch", Status: StatusOrdering}
	repo.members["m-1"] = &member.Member{ID: "m-1", GroupID: "g-1", CustomerID: "in", Status: member.StatusOrdering}
	repo.members["m-2"] = &member.Member{ID: "m-2", GroupID: "g-1", CustomerID: "gone", Status: member.StatusExit}

	svc := NewService(repo)
	if _, err := svc.Get(context.Background(), "g-1", "in"); err != nil {
		t.Fatalf("member should see the group, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "g-1", "out"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("outsider: expected ErrGroupNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "g-1", "gone"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("exited member: expected ErrGroupNotFound, got %v", err)
	}
}
