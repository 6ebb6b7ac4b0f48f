package member

import "time"

type Status string

const (
	StatusNotJoined  Status = "NOT_JOINED"
	StatusOrdering   Status = "ORDERING"
	StatusOrderReady Status = "ORDER_READY"
	StatusExit       Status = "EXIT"
	StatusExpelled   Status = "EXPELLED"
)

// Active reports whether the membership counts against the one-active-group
// invariant: a customer may hold at most one ORDERING/ORDER_READY membership
// across all groups.
func (s Status) Active() bool {
	return s == StatusOrdering || s == StatusOrderReady
}

// Terminal statuses never transition again.
func (s Status) Terminal() bool {
	return s == StatusExit || s == StatusExpelled
}

// transitions is the closed edge set of the membership state machine.
// NOT_JOINED -> ORDERING happens on invitation acceptance or direct
// admission; ORDERING -> ORDER_READY only during finalization;
// ORDERING -> EXIT/EXPELLED on self-exit and admin kick respectively.
var transitions = map[Status]map[Status]bool{
	StatusNotJoined: {
		StatusOrdering: true,
	},
	StatusOrdering: {
		StatusOrderReady: true,
		StatusExit:       true,
		StatusExpelled:   true,
	},
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

type Member struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	GroupID    string    `gorm:"type:uuid;not null;index"`
	CustomerID string    `gorm:"type:uuid;not null;index"`
	Status     Status    `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// GroupRef is the slice of the owning group that membership decisions need.
type GroupRef struct {
	ID        string
	CreatorID string
	Ordering  bool
}
