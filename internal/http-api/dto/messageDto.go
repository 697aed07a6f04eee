package dto

import (
	"emurebook/internal/http-api/models"
)

// SendMessageDTO for POST /api/messages
type SendMessageDTO struct {
	Receiver    string  `json:"receiver" binding:"required"`
	Content     string  `json:"content" binding:"required,max=1000"`
	RelatedBook *string `json:"related_book,omitempty"`
}

// UserSummary is the slim counterpart view embedded in conversation payloads.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func NewUserSummary(user *models.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
}

// ConversationSummary annotates a counterpart with the latest message and the
// number of their messages the current user has not read yet.
type ConversationSummary struct {
	User        UserSummary    `json:"user"`
	LastMessage models.Message `json:"last_message"`
	UnreadCount int            `json:"unread_count"`
}
