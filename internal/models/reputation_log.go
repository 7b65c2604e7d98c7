package models

import (
	"time"
)

// ReputationLog is the audit trail for every change to User.Reputation.
type ReputationLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Amount     int       `gorm:"not null" json:"amount"` // positive adds, negative deducts
	Action     string    `gorm:"size:100;not null" json:"action"`
	TargetType string    `gorm:"size:20" json:"target_type,omitempty"`
	TargetID   uint      `json:"target_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
