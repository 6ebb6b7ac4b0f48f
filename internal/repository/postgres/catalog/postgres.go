package catalog

import (
	"context"
	"errors"

	catalogdomain "botram-go/internal/domain/catalog"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (*catalogdomain.Item, error) {
	var item catalogdomain.Item
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) GetComposite(ctx context.Context, customMenuID string) (*catalogdomain.Composite, error) {
	var menu catalogdomain.CustomMenu
	if err := r.db.WithContext(ctx).Where("id = ?", customMenuID).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, err
	}

	components, err := loadComponents(r.db.WithContext(ctx), customMenuID)
	if err != nil {
		return nil, err
	}

	return &catalogdomain.Composite{
		ID:           menu.ID,
		RestaurantID: menu.RestaurantID,
		Name:         menu.Name,
		Components:   components,
	}, nil
}

func loadComponents(db *gorm.DB, customMenuID string) ([]catalogdomain.Component, error) {
	type componentRow struct {
		IngredientID string `gorm:"column:ingredient_id"`
		Name         string `gorm:"column:name"`
		Ratio        int    `gorm:"column:ratio"`
		Price        int64  `gorm:"column:price"`
		Stock        int    `gorm:"column:stock"`
	}

	var rows []componentRow
	if err := db.
		Table("custom_menu_components").
		Select("custom_menu_components.ingredient_id, ingredients.name, custom_menu_components.ratio, ingredients.price, ingredients.stock").
		Joins("join ingredients on ingredients.id = custom_menu_components.ingredient_id").
		Where("custom_menu_components.custom_menu_id = ?", customMenuID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	components := make([]catalogdomain.Component, 0, len(rows))
	for _, row := range rows {
		components = append(components, catalogdomain.Component{
			IngredientID: row.IngredientID,
			Name:         row.Name,
			Ratio:        row.Ratio,
			Price:        row.Price,
			Stock:        row.Stock,
		})
	}
	return components, nil
}
