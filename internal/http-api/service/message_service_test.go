package service

import (
	"context"
	"testing"
	"time"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetAllForUser(ctx context.Context, userID string) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetBetween(ctx context.Context, userID, otherUserID string) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	args := m.Called(ctx, senderID, receiverID)
	return args.Error(0)
}

func (m *MockMessageRepository) Save(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newMessageServiceForTest() (MessageService, *MockMessageRepository, *MockUserRepository) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	return NewMessageService(messageRepo, userRepo), messageRepo, userRepo
}

func TestSendMessage_EmptyContent(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()

	message, err := svc.Send(context.Background(), "sender-1", dto.SendMessageDTO{
		Receiver: "receiver-1",
		Content:  "   ",
	})

	assert.Equal(t, ErrEmptyContent, err)
	assert.Nil(t, message)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessage_ToSelf(t *testing.T) {
	svc, _, _ := newMessageServiceForTest()

	message, err := svc.Send(context.Background(), "sender-1", dto.SendMessageDTO{
		Receiver: "sender-1",
		Content:  "hello me",
	})

	assert.Equal(t, ErrSelfMessage, err)
	assert.Nil(t, message)
}

func TestSendMessage_ReceiverMissing(t *testing.T) {
	svc, _, userRepo := newMessageServiceForTest()

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	message, err := svc.Send(context.Background(), "sender-1", dto.SendMessageDTO{
		Receiver: "ghost",
		Content:  "anyone there?",
	})

	assert.Equal(t, ErrReceiverNotFound, err)
	assert.Nil(t, message)
	userRepo.AssertExpectations(t)
}

func TestSendMessage_Success(t *testing.T) {
	svc, messageRepo, userRepo := newMessageServiceForTest()
	ctx := context.Background()

	userRepo.On("FindByID", "receiver-1").Return(&models.User{ID: "receiver-1"}, nil)
	messageRepo.On("Create", ctx, mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Message).ID = "msg-1"
		}).
		Return(nil)
	loaded := &models.Message{ID: "msg-1", SenderID: "sender-1", ReceiverID: "receiver-1", Content: "is the book still available?"}
	messageRepo.On("GetByID", ctx, "msg-1").Return(loaded, nil)

	message, err := svc.Send(ctx, "sender-1", dto.SendMessageDTO{
		Receiver: "receiver-1",
		Content:  "is the book still available?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-1", message.ID)
	messageRepo.AssertExpectations(t)
}

func TestConversations_Derivation(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	alice := &models.User{ID: "alice", Name: "Alice"}
	bob := &models.User{ID: "bob", Name: "Bob"}
	now := time.Now()

	// newest first, as the repository returns them
	messages := []models.Message{
		{ID: "m4", SenderID: "bob", ReceiverID: "me", Sender: bob, Content: "ping", IsRead: false, CreatedAt: now},
		{ID: "m3", SenderID: "me", ReceiverID: "alice", Receiver: alice, Content: "sure", IsRead: false, CreatedAt: now.Add(-time.Minute)},
		{ID: "m2", SenderID: "bob", ReceiverID: "me", Sender: bob, Content: "hello?", IsRead: false, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m1", SenderID: "alice", ReceiverID: "me", Sender: alice, Content: "hi", IsRead: true, CreatedAt: now.Add(-3 * time.Minute)},
	}
	messageRepo.On("GetAllForUser", ctx, "me").Return(messages, nil)

	conversations, err := svc.Conversations(ctx, "me")

	assert.NoError(t, err)
	assert.Len(t, conversations, 2)

	// bob's thread surfaces first because his message is the newest
	assert.Equal(t, "bob", conversations[0].User.ID)
	assert.Equal(t, "m4", conversations[0].LastMessage.ID)
	assert.Equal(t, 2, conversations[0].UnreadCount)

	assert.Equal(t, "alice", conversations[1].User.ID)
	assert.Equal(t, "m3", conversations[1].LastMessage.ID)
	assert.Equal(t, 0, conversations[1].UnreadCount)
}

func TestConversations_SkipsDeletedCounterpart(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	// sender record gone; the thread cannot be attributed to anyone
	messages := []models.Message{
		{ID: "m1", SenderID: "deleted-user", ReceiverID: "me", Sender: nil, Content: "orphan"},
	}
	messageRepo.On("GetAllForUser", ctx, "me").Return(messages, nil)

	conversations, err := svc.Conversations(ctx, "me")

	assert.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestConversationWith_MarksCounterpartMessagesRead(t *testing.T) {
	svc, messageRepo, userRepo := newMessageServiceForTest()
	ctx := context.Background()

	other := &models.User{ID: "bob", Name: "Bob"}
	userRepo.On("FindByID", "bob").Return(other, nil)

	thread := []models.Message{
		{ID: "m1", SenderID: "bob", ReceiverID: "me", Content: "hello"},
		{ID: "m2", SenderID: "me", ReceiverID: "bob", Content: "hi"},
	}
	messageRepo.On("GetBetween", ctx, "me", "bob").Return(thread, nil)
	messageRepo.On("MarkConversationRead", ctx, "bob", "me").Return(nil)

	user, messages, err := svc.ConversationWith(ctx, "me", "bob")

	assert.NoError(t, err)
	assert.Equal(t, "bob", user.ID)
	assert.Len(t, messages, 2)
	messageRepo.AssertExpectations(t)
}

func TestConversationWith_UnknownUser(t *testing.T) {
	svc, _, userRepo := newMessageServiceForTest()

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	user, messages, err := svc.ConversationWith(context.Background(), "me", "ghost")

	assert.Equal(t, ErrReceiverNotFound, err)
	assert.Nil(t, user)
	assert.Nil(t, messages)
}

func TestMarkRead_Success(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	stored := &models.Message{ID: "m1", SenderID: "bob", ReceiverID: "me", IsRead: false}
	messageRepo.On("GetByID", ctx, "m1").Return(stored, nil)
	messageRepo.On("Save", ctx, stored).Return(nil)

	message, err := svc.MarkRead(ctx, "m1", "me")

	assert.NoError(t, err)
	assert.True(t, message.IsRead)
	messageRepo.AssertExpectations(t)
}

func TestMarkRead_NotReceiver(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	stored := &models.Message{ID: "m1", SenderID: "bob", ReceiverID: "me"}
	messageRepo.On("GetByID", ctx, "m1").Return(stored, nil)

	message, err := svc.MarkRead(ctx, "m1", "bob")

	assert.Equal(t, ErrNotReceiver, err)
	assert.Nil(t, message)
	messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteMessage_NotParticipant(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	stored := &models.Message{ID: "m1", SenderID: "bob", ReceiverID: "me"}
	messageRepo.On("GetByID", ctx, "m1").Return(stored, nil)

	err := svc.Delete(ctx, "m1", "eavesdropper")

	assert.Equal(t, ErrNotParticipant, err)
	messageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMessage_SenderMayDelete(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	stored := &models.Message{ID: "m1", SenderID: "bob", ReceiverID: "me"}
	messageRepo.On("GetByID", ctx, "m1").Return(stored, nil)
	messageRepo.On("Delete", ctx, "m1").Return(nil)

	err := svc.Delete(ctx, "m1", "bob")

	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}

func TestDeleteMessage_NotFound(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceForTest()
	ctx := context.Background()

	messageRepo.On("GetByID", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(ctx, "ghost", "me")

	assert.Equal(t, ErrMessageNotFound, err)
}
