package invitation

import (
	"context"
	"errors"

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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(invitationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Get(ctx context.Context, invitationID string) (*invitationdomain.Invitation, error) {
	var inv invitationdomain.Invitation
	if err := r.db.WithContext(ctx).Where("id = ?", invitationID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitationdomain.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context, customerID string) ([]invitationdomain.Invitation, error) {
	var invitations []invitationdomain.Invitation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ? AND is_active", customerID, invitationdomain.StatusNoResponse).
		Order("created_at desc").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *PostgresRepository) Resolve(ctx context.Context, invitationID string, status invitationdomain.Status) error {
	result := r.db.WithContext(ctx).Model(&invitationdomain.Invitation{}).
		Where("id = ? AND status = ? AND is_active", invitationID, invitationdomain.StatusNoResponse).
		Updates(map[string]interface{}{"status": status, "is_active": false})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invitationdomain.ErrInvitationResolved
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, invitationID string) error {
	return r.db.WithContext(ctx).Delete(&invitationdomain.Invitation{}, "id = ?", invitationID).Error
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

func (r *PostgresRepository) CountActiveMembershipsByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("customer_id = ? AND status IN ?", customerID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) GroupIsOrdering(ctx context.Context, groupID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&groupdomain.Group{}).
		Where("id = ? AND status = ?", groupID, groupdomain.StatusOrdering).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
