package service

import (
	"context"
	"errors"
	"strings"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound  = errors.New("no message found with that ID")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrEmptyContent     = errors.New("please provide receiver and content")
	ErrSelfMessage      = errors.New("you cannot send a message to yourself")
	ErrNotReceiver      = errors.New("you can only mark messages sent to you as read")
	ErrNotParticipant   = errors.New("you can only delete messages you sent or received")
)

type MessageService interface {
	Send(ctx context.Context, senderID string, req dto.SendMessageDTO) (*models.Message, error)
	ListMine(ctx context.Context, userID string) ([]models.Message, error)
	Conversations(ctx context.Context, userID string) ([]dto.ConversationSummary, error)
	ConversationWith(ctx context.Context, userID, otherUserID string) (*models.User, []models.Message, error)
	MarkRead(ctx context.Context, messageID, callerID string) (*models.Message, error)
	Delete(ctx context.Context, messageID, callerID string) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send stores a directed message. The receiver must exist; a related book
// reference is passed through unchecked.
func (s *messageService) Send(ctx context.Context, senderID string, req dto.SendMessageDTO) (*models.Message, error) {
	if strings.TrimSpace(req.Content) == "" || req.Receiver == "" {
		return nil, ErrEmptyContent
	}
	if req.Receiver == senderID {
		return nil, ErrSelfMessage
	}

	if _, err := s.userRepo.FindByID(req.Receiver); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    req.Receiver,
		Content:       req.Content,
		RelatedBookID: req.RelatedBook,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// reload with the sender/receiver/book summaries populated
	return s.messageRepo.GetByID(ctx, message.ID)
}

func (s *messageService) ListMine(ctx context.Context, userID string) ([]models.Message, error) {
	return s.messageRepo.GetAllForUser(ctx, userID)
}

// Conversations derives one summary per counterpart from the user's message
// history: the latest message plus how many of theirs are still unread.
// The underlying list is newest-first, so the first message seen for a
// counterpart is the conversation's latest.
func (s *messageService) Conversations(ctx context.Context, userID string) ([]dto.ConversationSummary, error) {
	messages, err := s.messageRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	byCounterpart := make(map[string]*dto.ConversationSummary)

	for _, message := range messages {
		var counterpart *models.User
		if message.SenderID == userID {
			counterpart = message.Receiver
		} else {
			counterpart = message.Sender
		}
		if counterpart == nil {
			// counterpart account was deleted; skip the orphaned thread
			continue
		}

		summary, seen := byCounterpart[counterpart.ID]
		if !seen {
			summary = &dto.ConversationSummary{
				User:        dto.NewUserSummary(counterpart),
				LastMessage: message,
			}
			byCounterpart[counterpart.ID] = summary
			order = append(order, counterpart.ID)
		}
		if message.ReceiverID == userID && !message.IsRead {
			summary.UnreadCount++
		}
	}

	conversations := make([]dto.ConversationSummary, 0, len(order))
	for _, id := range order {
		conversations = append(conversations, *byCounterpart[id])
	}
	return conversations, nil
}

// ConversationWith returns the two-way thread in chronological order and, as
// a side effect, marks everything the counterpart sent as read.
func (s *messageService) ConversationWith(ctx context.Context, userID, otherUserID string) (*models.User, []models.Message, error) {
	otherUser, err := s.userRepo.FindByID(otherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrReceiverNotFound
		}
		return nil, nil, err
	}

	messages, err := s.messageRepo.GetBetween(ctx, userID, otherUserID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.messageRepo.MarkConversationRead(ctx, otherUserID, userID); err != nil {
		return nil, nil, err
	}

	return otherUser, messages, nil
}

// MarkRead flips a single message; only its receiver may do so.
func (s *messageService) MarkRead(ctx context.Context, messageID, callerID string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if message.ReceiverID != callerID {
		return nil, ErrNotReceiver
	}

	message.IsRead = true
	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Delete removes a message; either participant may do so.
func (s *messageService) Delete(ctx context.Context, messageID, callerID string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	if message.SenderID != callerID && message.ReceiverID != callerID {
		return ErrNotParticipant
	}

	return s.messageRepo.Delete(ctx, messageID)
}
