package domain

import (
	"encoding/json"
	"time"
)

type PendingChangeStatus string

const (
	ChangePending   PendingChangeStatus = "PENDING"
	ChangeApplied   PendingChangeStatus = "APPLIED"
	ChangeDiscarded PendingChangeStatus = "DISCARDED"
)

// FieldChange is one entry of a staged diff. For sensitive fields both sides
// hold masked representations, never full plaintext.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// PendingChange is a customer-submitted diff against a live reservation,
// waiting for staff approval. At most one PENDING change exists per
// reservation; a second edit overwrites it instead of creating a duplicate.
type PendingChange struct {
	ID            int64               `json:"id" gorm:"primaryKey"`
	ReservationID int64               `json:"reservation_id" gorm:"not null;index"`
	Changes       json.RawMessage     `json:"changes" gorm:"type:text;not null"`
	Status        PendingChangeStatus `json:"status" gorm:"size:20;not null;default:PENDING"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (PendingChange) TableName() string { return "pending_changes" }
