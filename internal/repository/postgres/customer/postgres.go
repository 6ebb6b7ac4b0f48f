package customer

import (
	"context"
	"errors"

	customerdomain "botram-go/internal/domain/customer"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, customerID string) (*customerdomain.Customer, error) {
	var c customerdomain.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerdomain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}
