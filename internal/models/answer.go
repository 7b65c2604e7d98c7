package models

import (
	"time"

	"stackit/internal/voting"
)

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"default:false;index" json:"is_accepted"`
	Upvotes    int       `gorm:"default:0" json:"upvotes"`
	Downvotes  int       `gorm:"default:0" json:"downvotes"`
	Score      int       `gorm:"default:0" json:"vote_count"`
	IsActive   bool      `gorm:"default:true;index" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Rendered string `gorm:"-" json:"rendered,omitempty"`
}

func (a *Answer) VotableID() uint { return a.ID }
func (a *Answer) AuthorID() uint { return a.UserID }
func (a *Answer) Kind() voting.TargetKind { return voting.KindAnswer }
func (a *Answer) Active() bool { return a.IsActive }
