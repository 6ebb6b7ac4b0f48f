package catalog

import "context"

// Catalog is the read-only collaborator this engine consults for current
// prices and stock levels. The binding stock check at finalization uses the
// locked variants on the order repository instead.
type Catalog interface {
	GetItem(ctx context.Context, itemID string) (*Item, error)
	GetComposite(ctx context.Context, customMenuID string) (*Composite, error)
}
