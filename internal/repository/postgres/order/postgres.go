package order

import (
	"context"
	"errors"

	cartdomain "botram-go/internal/domain/cart"
	catalogdomain "botram-go/internal/domain/catalog"
	groupdomain "botram-go/internal/domain/group"
	memberdomain "botram-go/internal/domain/member"
	orderdomain "botram-go/internal/domain/order"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var openStatuses = []memberdomain.Status{
	memberdomain.StatusNotJoined,
	memberdomain.StatusOrdering,
	memberdomain.StatusOrderReady,
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(orderdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetGroupForUpdate(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	var g groupdomain.Group
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", groupID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, groupdomain.ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresRepository) UpdateGroupStatus(ctx context.Context, groupID string, from, to groupdomain.Status) error {
	result := r.db.WithContext(ctx).Model(&groupdomain.Group{}).
		Where("id = ? AND status = ?", groupID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrStatusConflict
	}
	return nil
}

func (r *PostgresRepository) ListMembersByStatusForUpdate(ctx context.Context, groupID string, status memberdomain.Status) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("group_id = ? AND status = ?", groupID, status).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) UpdateMemberStatus(ctx context.Context, memberID string, from, to memberdomain.Status) error {
	result := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("id = ? AND status = ?", memberID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrStatusConflict
	}
	return nil
}

func (r *PostgresRepository) ListCartLines(ctx context.Context, groupID, memberID string) ([]cartdomain.Line, error) {
	var lines []cartdomain.Line
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("created_at asc").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *PostgresRepository) GetItemForUpdate(ctx context.Context, itemID string) (*catalogdomain.Item, error) {
	var item catalogdomain.Item
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogdomain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) GetCompositeForUpdate(ctx context.Context, customMenuID string) (*catalogdomain.Composite, error) {
	var menu catalogdomain.CustomMenu
	if err := r.db.WithContext(ctx).Where("id = ?", customMenuID).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, err
	}

	type componentRow struct {
		IngredientID string `gorm:"column:ingredient_id"`
		Name         string `gorm:"column:name"`
		Ratio        int    `gorm:"column:ratio"`
		Price        int64  `gorm:"column:price"`
		Stock        int    `gorm:"column:stock"`
	}

	var rows []componentRow
	if err := r.db.WithContext(ctx).
		Table("custom_menu_components").
		Select("custom_menu_components.ingredient_id, ingredients.name, custom_menu_components.ratio, ingredients.price, ingredients.stock").
		Joins("join ingredients on ingredients.id = custom_menu_components.ingredient_id").
		Where("custom_menu_components.custom_menu_id = ?", customMenuID).
		Order("custom_menu_components.ingredient_id asc").
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "ingredients"}}).
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

	return &catalogdomain.Composite{
		ID:           menu.ID,
		RestaurantID: menu.RestaurantID,
		Name:         menu.Name,
		Components:   components,
	}, nil
}

func (r *PostgresRepository) DecrementItemStock(ctx context.Context, itemID string, quantity int) error {
	result := r.db.WithContext(ctx).Model(&catalogdomain.Item{}).
		Where("id = ? AND stock >= ?", itemID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalogdomain.ErrOutOfStock
	}
	return nil
}

func (r *PostgresRepository) DecrementIngredientStock(ctx context.Context, ingredientID string, quantity int) error {
	result := r.db.WithContext(ctx).Model(&catalogdomain.Ingredient{}).
		Where("id = ? AND stock >= ?", ingredientID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalogdomain.ErrOutOfStock
	}
	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, o *orderdomain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *PostgresRepository) CreateOrderLines(ctx context.Context, lines []orderdomain.Line) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *PostgresRepository) CreateMemberOrder(ctx context.Context, mo *orderdomain.MemberOrder) error {
	return r.db.WithContext(ctx).Create(mo).Error
}

func (r *PostgresRepository) CreateGroupOrder(ctx context.Context, aggregate *orderdomain.GroupOrder) error {
	return r.db.WithContext(ctx).Create(aggregate).Error
}

func (r *PostgresRepository) GetGroupOrder(ctx context.Context, groupID string) (*orderdomain.GroupOrder, error) {
	var aggregate orderdomain.GroupOrder
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&aggregate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, orderdomain.ErrGroupOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

func (r *PostgresRepository) ListMemberOrderRows(ctx context.Context, groupID string) ([]orderdomain.MemberOrderRow, error) {
	var rows []orderdomain.MemberOrderRow
	if err := r.db.WithContext(ctx).
		Table("members").
		Select("members.id as member_id, members.customer_id, customers.name as customer_name, members.status as member_status, orders.id as order_id, orders.total, orders.is_paid").
		Joins("join customers on customers.id = members.customer_id").
		Joins("left join member_orders on member_orders.member_id = members.id").
		Joins("left join orders on orders.id = member_orders.order_id").
		Where("members.group_id = ?", groupID).
		Order("members.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) HasOpenMember(ctx context.Context, groupID, customerID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("group_id = ? AND customer_id = ? AND status IN ?", groupID, customerID, openStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
