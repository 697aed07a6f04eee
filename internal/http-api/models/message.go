package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	SenderID      string    `gorm:"type:uuid;not null;index:idx_messages_sender" json:"sender_id"`
	ReceiverID    string    `gorm:"type:uuid;not null;index:idx_messages_receiver" json:"receiver_id"`
	Content       string    `gorm:"not null;size:1000" json:"content"`
	RelatedBookID *string   `gorm:"type:uuid" json:"related_book_id,omitempty"`
	IsRead        bool      `gorm:"default:false;not null" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Associations
	Sender      *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver    *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	RelatedBook *Book `gorm:"foreignKey:RelatedBookID" json:"related_book,omitempty"`
}

// BeforeCreate hook to set UUID before creating a Message
func (message *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	return
}

func (Message) TableName() string {
	return "messages"
}
