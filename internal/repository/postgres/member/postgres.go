package member

import (
	"context"
	"errors"

	groupdomain "botram-go/internal/domain/group"
	memberdomain "botram-go/internal/domain/member"
	orderdomain "botram-go/internal/domain/order"
	"gorm.io/gorm"
)

var openStatuses = []memberdomain.Status{
	memberdomain.StatusNotJoined,
	memberdomain.StatusOrdering,
	memberdomain.StatusOrderReady,
}

var activeStatuses = []memberdomain.Status{
	memberdomain.StatusOrdering,
	memberdomain.StatusOrderReady,
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Get(ctx context.Context, memberID string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetOpenByGroupAndCustomer(ctx context.Context, groupID, customerID string) (*memberdomain.Member, error) {
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

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, memberID string, from, to memberdomain.Status) error {
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

func (r *PostgresRepository) CountActive(ctx context.Context, groupID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("group_id = ? AND status IN ?", groupID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountActiveByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("customer_id = ? AND status IN ?", customerID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) GetGroupRef(ctx context.Context, groupID string) (*memberdomain.GroupRef, error) {
	var g groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &memberdomain.GroupRef{
		ID:        g.ID,
		CreatorID: g.CreatorID,
		Ordering:  g.Status == groupdomain.StatusOrdering,
	}, nil
}

func (r *PostgresRepository) GroupOrderExists(ctx context.Context, groupID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&orderdomain.GroupOrder{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
