package models

import (
	"time"

	"stackit/internal/voting"
)

type Question struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Title            string    `gorm:"size:150;not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Tags             string    `gorm:"size:255" json:"tags"` // comma separated, catalog lives elsewhere
	AcceptedAnswerID *uint     `gorm:"index" json:"accepted_answer_id"`
	Upvotes          int       `gorm:"default:0" json:"upvotes"`
	Downvotes        int       `gorm:"default:0" json:"downvotes"`
	Score            int       `gorm:"default:0;index" json:"vote_count"` // upvotes - downvotes
	HotScore         int       `gorm:"default:0;index" json:"hot_score"`
	Views            int       `gorm:"default:0" json:"views"`
	IsActive         bool      `gorm:"default:true;index" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	AnswerCount int    `gorm:"-" json:"answer_count"`
	Rendered    string `gorm:"-" json:"rendered,omitempty"`
}

func (q *Question) VotableID() uint { return q.ID }
func (q *Question) AuthorID() uint { return q.UserID }
func (q *Question) Kind() voting.TargetKind { return voting.KindQuestion }
func (q *Question) Active() bool { return q.IsActive }

func (q *Question) Acceptance() voting.AcceptanceState {
	return voting.AcceptanceState{AnswerID: q.AcceptedAnswerID}
}
