package group

import (
	"context"
	"errors"

	customerdomain "botram-go/internal/domain/customer"
	groupdomain "botram-go/internal/domain/group"
	invitationdomain "botram-go/internal/domain/invitation"
	memberdomain "botram-go/internal/domain/member"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, g *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *PostgresRepository) Get(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	var g groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID string) ([]groupdomain.Group, error) {
	var groups []groupdomain.Group
	if err := r.db.WithContext(ctx).
		Table("groups").
		Joins("join members on members.group_id = groups.id").
		Where("members.customer_id = ? AND members.status IN ?", customerID, openStatuses).
		Order("groups.created_at desc").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, groupID string, from, to groupdomain.Status) error {
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

func (r *PostgresRepository) RestaurantExists(ctx context.Context, restaurantID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("restaurants").
		Where("id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetCustomer(ctx context.Context, customerID string) (*customerdomain.Customer, error) {
	var c customerdomain.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerdomain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
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

func (r *PostgresRepository) CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("customer_id = ? AND status IN ?", customerID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateInvitation(ctx context.Context, inv *invitationdomain.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}
