package service

import (
	"context"
	"strings"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createConversationFn     func(context.Context, *models.Conversation, []uint) error
	getConversationFn        func(context.Context, uint) (*models.Conversation, error)
	getUserConversationsFn   func(context.Context, uint) ([]*models.Conversation, error)
	findDirectConversationFn func(context.Context, uint, uint) (*models.Conversation, error)
	isParticipantFn          func(context.Context, uint, uint) (bool, error)
	createMessageFn          func(context.Context, *models.Message) error
	getMessagesFn            func(context.Context, uint, int, int) ([]*models.Message, error)
	touchConversationFn      func(context.Context, uint) error
}

func (s *chatRepoStub) CreateConversation(ctx context.Context, conv *models.Conversation, memberIDs []uint) error {
	return s.createConversationFn(ctx, conv, memberIDs)
}
func (s *chatRepoStub) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getConversationFn(ctx, id)
}
func (s *chatRepoStub) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.getUserConversationsFn(ctx, userID)
}
func (s *chatRepoStub) FindDirectConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	return s.findDirectConversationFn(ctx, userA, userB)
}
func (s *chatRepoStub) IsParticipant(ctx context.Context, convID, userID uint) (bool, error) {
	return s.isParticipantFn(ctx, convID, userID)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	return s.getMessagesFn(ctx, convID, limit, offset)
}
func (s *chatRepoStub) TouchConversation(ctx context.Context, convID uint) error {
	return s.touchConversationFn(ctx, convID)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createConversationFn: func(_ context.Context, conv *models.Conversation, _ []uint) error {
			conv.ID = 1
			return nil
		},
		getConversationFn: func(_ context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{ID: id}, nil
		},
		getUserConversationsFn:   func(_ context.Context, _ uint) ([]*models.Conversation, error) { return nil, nil },
		findDirectConversationFn: func(_ context.Context, _, _ uint) (*models.Conversation, error) { return nil, nil },
		isParticipantFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		createMessageFn:          func(_ context.Context, _ *models.Message) error { return nil },
		getMessagesFn:            func(_ context.Context, _ uint, _, _ int) ([]*models.Message, error) { return nil, nil },
		touchConversationFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

func TestChatService_CreateConversation_Validation(t *testing.T) {
	t.Parallel()

	svc := NewChatService(noopChatRepo(), noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateConversationInput
	}{
		{
			name:  "group without name",
			input: CreateConversationInput{UserID: 1, IsGroup: true, ParticipantIDs: []uint{2, 3}},
		},
		{
			name:  "no participants",
			input: CreateConversationInput{UserID: 1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateConversation(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestChatService_CreateConversation_UnknownParticipant(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewChatService(noopChatRepo(), userRepo)

	_, err := svc.CreateConversation(context.Background(), CreateConversationInput{
		UserID:         1,
		ParticipantIDs: []uint{99},
	})
	assertNotFoundError(t, err)
}

func TestChatService_CreateConversation_DMDedup(t *testing.T) {
	t.Parallel()

	chatRepo := noopChatRepo()
	existing := &models.Conversation{ID: 42}
	chatRepo.findDirectConversationFn = func(_ context.Context, userA, userB uint) (*models.Conversation, error) {
		if (userA == 1 && userB == 2) || (userA == 2 && userB == 1) {
			return existing, nil
		}
		return nil, nil
	}
	createCalled := false
	chatRepo.createConversationFn = func(_ context.Context, conv *models.Conversation, _ []uint) error {
		createCalled = true
		conv.ID = 100
		return nil
	}
	svc := NewChatService(chatRepo, noopUserRepo())

	conv, err := svc.CreateConversation(context.Background(), CreateConversationInput{
		UserID:         1,
		ParticipantIDs: []uint{2},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), conv.ID)
	assert.False(t, createCalled, "expected existing DM to be reused")
}

func TestChatService_CreateConversation_AddsAllParticipants(t *testing.T) {
	t.Parallel()

	chatRepo := noopChatRepo()
	var members []uint
	chatRepo.createConversationFn = func(_ context.Context, conv *models.Conversation, memberIDs []uint) error {
		members = memberIDs
		conv.ID = 1
		return nil
	}
	svc := NewChatService(chatRepo, noopUserRepo())

	_, err := svc.CreateConversation(context.Background(), CreateConversationInput{
		UserID:         1,
		Name:           "team",
		IsGroup:        true,
		ParticipantIDs: []uint{2, 3, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, members, "creator first, duplicates dropped")
}

func TestChatService_SendMessage_Validation(t *testing.T) {
	t.Parallel()

	svc := NewChatService(noopChatRepo(), noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input SendMessageInput
	}{
		{
			name:  "empty content",
			input: SendMessageInput{UserID: 1, ConversationID: 1},
		},
		{
			name:  "whitespace-only content",
			input: SendMessageInput{UserID: 1, ConversationID: 1, Content: "  \n "},
		},
		{
			name:  "content too long",
			input: SendMessageInput{UserID: 1, ConversationID: 1, Content: strings.Repeat("x", 10001)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.SendMessage(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestChatService_SendMessage_NonParticipant(t *testing.T) {
	t.Parallel()

	chatRepo := noopChatRepo()
	chatRepo.isParticipantFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	createCalled := false
	chatRepo.createMessageFn = func(_ context.Context, _ *models.Message) error {
		createCalled = true
		return nil
	}
	svc := NewChatService(chatRepo, noopUserRepo())

	_, err := svc.SendMessage(context.Background(), SendMessageInput{
		UserID:         5,
		ConversationID: 1,
		Content:        "hi",
	})
	assertForbiddenError(t, err)
	assert.False(t, createCalled)
}

func TestChatService_SendMessage_AttachesSenderAndTouches(t *testing.T) {
	t.Parallel()

	chatRepo := noopChatRepo()
	touched := false
	chatRepo.touchConversationFn = func(_ context.Context, _ uint) error {
		touched = true
		return nil
	}
	chatRepo.createMessageFn = func(_ context.Context, msg *models.Message) error {
		msg.ID = 9
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "bob"}, nil
	}
	svc := NewChatService(chatRepo, userRepo)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{
		UserID:         2,
		ConversationID: 1,
		Content:        "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), msg.ID)
	assert.Equal(t, "hello", msg.Content)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, "bob", msg.Sender.Username)
	assert.True(t, touched)
}

func TestChatService_GetMessagesForUser(t *testing.T) {
	t.Parallel()

	t.Run("non-participant is forbidden", func(t *testing.T) {
		t.Parallel()
		chatRepo := noopChatRepo()
		chatRepo.isParticipantFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewChatService(chatRepo, noopUserRepo())

		_, err := svc.GetMessagesForUser(context.Background(), 1, 5, 50, 0)
		assertForbiddenError(t, err)
	})

	t.Run("missing conversation", func(t *testing.T) {
		t.Parallel()
		chatRepo := noopChatRepo()
		chatRepo.getConversationFn = func(_ context.Context, id uint) (*models.Conversation, error) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		svc := NewChatService(chatRepo, noopUserRepo())

		_, err := svc.GetMessagesForUser(context.Background(), 99, 1, 50, 0)
		assertNotFoundError(t, err)
	})

	t.Run("participant gets messages", func(t *testing.T) {
		t.Parallel()
		chatRepo := noopChatRepo()
		chatRepo.getMessagesFn = func(_ context.Context, convID uint, _, _ int) ([]*models.Message, error) {
			return []*models.Message{{ID: 1, ConversationID: convID}, {ID: 2, ConversationID: convID}}, nil
		}
		svc := NewChatService(chatRepo, noopUserRepo())

		msgs, err := svc.GetMessagesForUser(context.Background(), 1, 2, 50, 0)
		require.NoError(t, err)
		assert.Len(t, msgs, 2)
	})
}
