package customer

import "context"

type Repository interface {
	Get(ctx context.Context, customerID string) (*Customer, error)
}
