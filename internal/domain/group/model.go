package group

import "time"

type Status string

const (
	StatusOrdering      Status = "ORDERING"
	StatusAllOrderReady Status = "ALL_ORDER_READY"
	StatusDone          Status = "DONE"
	// StatusCancelled is a reserved terminal state; no operation in this
	// engine produces it yet, the restaurant-side workflow would.
	StatusCancelled Status = "CANCELLED"
)

// transitions is forward-only: a group never returns to an earlier stage.
var transitions = map[Status]map[Status]bool{
	StatusOrdering: {
		StatusAllOrderReady: true,
		StatusCancelled:     true,
	},
	StatusAllOrderReady: {
		StatusDone:      true,
		StatusCancelled: true,
	},
}

func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

const (
	NameMinLength = 3
	NameMaxLength = 30
)

type Group struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	RestaurantID   string    `gorm:"type:uuid;not null"`
	CreatorID      string    `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"size:30;not null"`
	OpenMembership bool      `gorm:"not null;default:false"`
	Status         Status    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}
