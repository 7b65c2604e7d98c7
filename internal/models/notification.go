package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeAnswer         NotificationType = "answer"
	NotificationTypeAcceptedAnswer NotificationType = "accepted_answer"
	NotificationTypeSystem         NotificationType = "system"
)

type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"recipient_id"` // Receiver
	User       User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID    *uint            `gorm:"index" json:"sender_id"` // Sender
	Actor      *User            `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender,omitempty"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message    string           `gorm:"type:text" json:"message"`
	QuestionID *uint            `gorm:"index" json:"related_question_id"`
	AnswerID   *uint            `json:"related_answer_id"`
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	IsActive   bool             `gorm:"default:true" json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
}
