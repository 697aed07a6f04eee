package models

import "time"

// Favorite links a user to a book they bookmarked. The unique pair index is
// what makes the favorite toggle a membership flip rather than a counter.
type Favorite struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_book" json:"user_id"`
	BookID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_book" json:"book_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
