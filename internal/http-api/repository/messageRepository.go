package repository

import (
	"context"
	"fmt"

	"emurebook/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetAllForUser(ctx context.Context, userID string) ([]models.Message, error)
	GetBetween(ctx context.Context, userID, otherUserID string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
	Save(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func userSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}

func bookSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "image_url")
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender", userSummary).
		Preload("Receiver", userSummary).
		Preload("RelatedBook", bookSummary).
		First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetAllForUser returns every message the user sent or received, newest first.
func (r *messageRepository) GetAllForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender", userSummary).
		Preload("Receiver", userSummary).
		Preload("RelatedBook", bookSummary).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// GetBetween returns the conversation between two users in chronological order.
func (r *messageRepository) GetBetween(ctx context.Context, userID, otherUserID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("RelatedBook", bookSummary).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return messages, nil
}

// MarkConversationRead flips every unread message from sender to receiver.
// Running it again is a no-op, which keeps the conversation read idempotent.
func (r *messageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) Save(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
