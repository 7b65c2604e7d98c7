package models

import (
	"time"

	"stackit/internal/voting"
)

// Vote is one identity's current vote on one question or answer. The unique
// index keeps each identity in at most one of the upvoter/downvoter sets.
type Vote struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"not null;uniqueIndex:idx_vote_target_user,priority:3" json:"user_id"`
	TargetType voting.TargetKind `gorm:"size:20;not null;uniqueIndex:idx_vote_target_user,priority:1" json:"target_type"`
	TargetID   uint              `gorm:"not null;uniqueIndex:idx_vote_target_user,priority:2" json:"target_id"`
	Direction  voting.Direction  `gorm:"size:10;not null" json:"direction"` // up or down
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
