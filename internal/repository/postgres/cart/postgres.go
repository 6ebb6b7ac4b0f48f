package cart

import (
	"context"
	"errors"

	cartdomain "botram-go/internal/domain/cart"
	memberdomain "botram-go/internal/domain/member"
	"gorm.io/gorm"
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

func (r *PostgresRepository) CreateLine(ctx context.Context, line *cartdomain.Line) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *PostgresRepository) GetLineOwned(ctx context.Context, lineID, customerID string) (*cartdomain.Line, error) {
	var line cartdomain.Line
	err := r.db.WithContext(ctx).
		Table("cart_lines").
		Joins("join members on members.id = cart_lines.member_id").
		Where("cart_lines.id = ? AND members.customer_id = ?", lineID, customerID).
		Select("cart_lines.*").
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cartdomain.ErrLineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *PostgresRepository) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error {
	return r.db.WithContext(ctx).Model(&cartdomain.Line{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

func (r *PostgresRepository) DeleteLineOwned(ctx context.Context, lineID, customerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND member_id IN (SELECT id FROM members WHERE customer_id = ?)", lineID, customerID).
		Delete(&cartdomain.Line{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteLinesOwned(ctx context.Context, lineIDs []string, customerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ? AND member_id IN (SELECT id FROM members WHERE customer_id = ?)", lineIDs, customerID).
		Delete(&cartdomain.Line{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ListByMember(ctx context.Context, groupID, memberID string) ([]cartdomain.Line, error) {
	var lines []cartdomain.Line
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("created_at asc").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *PostgresRepository) GetOpenMember(ctx context.Context, groupID, customerID string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND customer_id = ? AND status IN ?", groupID, customerID, openStatuses).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, memberdomain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
