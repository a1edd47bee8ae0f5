package confirmation

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

const (
	DecisionConfirm = "confirm"
	DecisionReject  = "reject"
)

// ConfirmationRequest is an unverified claim that a family edge should
// exist. Edges are only ever created by confirming one of these, which is
// what makes every edge auditable back to a single approval.
type ConfirmationRequest struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	ChildCode         string     `gorm:"not null;index"`
	ClaimedParentCode string     `gorm:"not null;index"`
	ParentRole        string     `gorm:"type:varchar(8);not null"`
	Status            string     `gorm:"type:varchar(16);not null;default:pending;index"`
	Notes             string
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	ResolvedAt        *time.Time
}

func (r *ConfirmationRequest) Terminal() bool {
	return r.Status != StatusPending
}
