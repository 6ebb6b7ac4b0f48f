package order

import (
	"time"

	"botram-go/internal/domain/member"
)

// Status is the restaurant-facing order lifecycle. Only StatusCreated is
// produced by this engine; the later stages are restaurant-operated.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusAccepted  Status = "ACCEPTED"
	StatusProcessed Status = "PROCESSED"
	StatusDone      Status = "DONE"
)

// Order is an immutable per-member order frozen at finalization. Total and
// line prices are snapshots; later catalog price changes do not affect them.
type Order struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	CustomerID   string    `gorm:"type:uuid;not null"`
	RestaurantID string    `gorm:"type:uuid;not null"`
	IsGroup      bool      `gorm:"not null;default:false"`
	Total        int64     `gorm:"not null"`
	Status       Status    `gorm:"type:varchar(20);not null"`
	IsPaid       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Line is a frozen copy of a cart line: name and unit price are captured
// from the catalog at finalization time, not referenced.
type Line struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	OrderID    string `gorm:"type:uuid;not null;index"`
	ItemName   string `gorm:"not null"`
	UnitPrice  int64  `gorm:"not null"`
	Quantity   int    `gorm:"not null"`
	Wrapped    bool   `gorm:"not null;default:false"`
	SpiceLevel *int
}

func (Line) TableName() string { return "order_lines" }

// MemberOrder records which order resulted from which member's cart;
// created exactly once per member at finalization.
type MemberOrder struct {
	MemberID  string    `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:uuid;not null;uniqueIndex"`
	GroupID   string    `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// GroupOrder is the aggregate the restaurant interacts with after
// finalization; created exactly once per group.
type GroupOrder struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	GroupID      string    `gorm:"type:uuid;not null;uniqueIndex"`
	RestaurantID string    `gorm:"type:uuid;not null"`
	TotalAmount  int64     `gorm:"not null"`
	Status       Status    `gorm:"type:varchar(20);not null"`
	IsPaid       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// MemberOrderRow is the admin-dashboard view of one member and the order
// their cart produced, if any.
type MemberOrderRow struct {
	MemberID     string        `json:"member_id"`
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	MemberStatus member.Status `json:"member_status"`
	OrderID      *string       `json:"order_id,omitempty"`
	Total        *int64        `json:"total,omitempty"`
	IsPaid       *bool         `json:"is_paid,omitempty"`
}
