package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"column:password_hash;not null" json:"-"` // Not shown in JSON
	Department string    `json:"department,omitempty"`
	StudentID  string    `json:"student_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `gorm:"default:'member';not null" json:"role"` // "member" or "admin"
	Avatar     string    `gorm:"default:'default-avatar.jpg'" json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
