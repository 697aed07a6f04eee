package models

import "time"

type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_book_user" json:"book_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_book_user" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}
