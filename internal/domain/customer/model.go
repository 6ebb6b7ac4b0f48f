package customer

import "time"

// JoinPreference controls how a customer may be brought into a group:
// by joining open groups themselves, by being added directly, or only
// after accepting an invitation.
type JoinPreference string

const (
	JoinBySelf       JoinPreference = "BYSELF"
	JoinDirectly     JoinPreference = "DIRECTLY"
	JoinByInvitation JoinPreference = "INVITATION"
)

type Customer struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"not null"`
	JoinPreference JoinPreference `gorm:"type:varchar(16);not null;default:INVITATION"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}
