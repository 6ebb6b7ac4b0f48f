package invitation

import "time"

type Status string

const (
	StatusNoResponse Status = "NO_RESPONSE"
	StatusAccepted   Status = "ACCEPTED"
	StatusRejected   Status = "REJECTED"
)

// An Invitation is created only for customers whose join preference
// requires explicit consent. It is terminal once accepted or rejected.
type Invitation struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	GroupID    string    `gorm:"type:uuid;not null;index"`
	CustomerID string    `gorm:"type:uuid;not null;index"`
	Status     Status    `gorm:"type:varchar(16);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (i *Invitation) Pending() bool {
	return i.Status == StatusNoResponse && i.IsActive
}
