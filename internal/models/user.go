package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // Hash
	Avatar     string    `json:"avatar"`
	Bio        string    `gorm:"size:200" json:"bio"`
	Reputation int       `gorm:"default:0;index" json:"reputation"`           // only written by services.ApplyReputation
	Role       string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const RoleAdmin = "admin"

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
