package cart

import "time"

// Line is one cart entry: either a catalog item or a composed menu, never
// both. Lines are freely mutable by their owner until finalization copies
// them into an immutable order.
type Line struct {
	ID           string     `gorm:"type:uuid;primaryKey"`
	GroupID      string     `gorm:"type:uuid;not null;index"`
	MemberID     string     `gorm:"type:uuid;not null;index"`
	MenuItemID   *string    `gorm:"type:uuid"`
	CustomMenuID *string    `gorm:"type:uuid"`
	Quantity     int       `gorm:"not null"`
	Wrapped      bool      `gorm:"not null;default:false"`
	SpiceLevel   *int
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Line) TableName() string { return "cart_lines" }

// ItemRef identifies the catalog item a cart mutation targets; exactly one
// field must be set.
type ItemRef struct {
	MenuItemID   string
	CustomMenuID string
}

func (r ItemRef) valid() bool {
	return (r.MenuItemID == "") != (r.CustomMenuID == "")
}

// LineView is a cart line joined with the live catalog name and price for
// display. The price shown here is advisory; the frozen order price is
// recomputed at finalization.
type LineView struct {
	Line
	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// MutationResult reports the written line plus whether one more unit would
// still fit within current stock, so callers can disable add-more controls.
type MutationResult struct {
	Line                 Line
	ItemName             string
	UnitPrice            int64
	IsAvailableToAddMore bool
}
