package catalog

// Item is a single catalog product with its own stock figure.
type Item struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	RestaurantID string `gorm:"type:uuid;not null;index"`
	Name         string `gorm:"not null"`
	Price        int64  `gorm:"not null"`
	Stock        int    `gorm:"not null"`
}

func (Item) TableName() string { return "menu_items" }

// Ingredient is a component stock that composed menus draw from.
type Ingredient struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	RestaurantID string `gorm:"type:uuid;not null;index"`
	Name         string `gorm:"not null"`
	Price        int64  `gorm:"not null"`
	Stock        int    `gorm:"not null"`
}

type CustomMenu struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	RestaurantID string `gorm:"type:uuid;not null;index"`
	Name         string `gorm:"not null"`
}

type CustomMenuComponent struct {
	CustomMenuID string `gorm:"type:uuid;primaryKey"`
	IngredientID string `gorm:"type:uuid;primaryKey"`
	Ratio        int    `gorm:"not null"`
}

// Component is one ingredient of a composed menu together with its live
// price and stock.
type Component struct {
	IngredientID string
	Name         string
	Ratio        int
	Price        int64
	Stock        int
}

// Composite is a composed menu with its components resolved.
type Composite struct {
	ID           string
	RestaurantID string
	Name         string
	Components   []Component
}

// Price of a composed menu is the ratio-weighted sum of its component
// prices.
func (c *Composite) Price() int64 {
	var total int64
	for _, comp := range c.Components {
		total += int64(comp.Ratio) * comp.Price
	}
	return total
}

// MaxQuantity is the largest order quantity every component stock can
// satisfy (qty x ratio <= stock for each component).
func (c *Composite) MaxQuantity() int {
	if len(c.Components) == 0 {
		return 0
	}
	max := -1
	for _, comp := range c.Components {
		if comp.Ratio <= 0 {
			return 0
		}
		limit := comp.Stock / comp.Ratio
		if max == -1 || limit < max {
			max = limit
		}
	}
	return max
}
