// Package service provides application business logic (chat, posts, users, etc.).
package service

import (
	"context"
	"strings"

	"mingle/internal/models"
	"mingle/internal/repository"
)

const maxMessageContentLen = 10000 // 10K characters

// ChatService provides conversation and messaging business logic.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// CreateConversationInput is the input for creating a conversation.
type CreateConversationInput struct {
	UserID         uint
	Name           string
	IsGroup        bool
	ParticipantIDs []uint
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	UserID         uint
	ConversationID uint
	Content        string
}

// NewChatService returns a new ChatService.
func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// CreateConversation creates a new conversation (DM or group). For a DM, an
// existing conversation between the same two users is returned instead of
// creating a duplicate.
func (s *ChatService) CreateConversation(ctx context.Context, in CreateConversationInput) (*models.Conversation, error) {
	if in.IsGroup && strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Group conversations require a name")
	}
	if len(in.ParticipantIDs) == 0 {
		return nil, models.NewValidationError("At least one participant is required")
	}

	// Every participant must exist
	for _, participantID := range in.ParticipantIDs {
		if participantID == in.UserID {
			continue
		}
		if _, err := s.userRepo.GetByID(ctx, participantID); err != nil {
			return nil, err
		}
	}

	if !in.IsGroup && len(in.ParticipantIDs) == 1 && in.ParticipantIDs[0] != in.UserID {
		existing, err := s.chatRepo.FindDirectConversation(ctx, in.UserID, in.ParticipantIDs[0])
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	// Creator first, duplicates dropped; the conversation and all member rows
	// are written in one transaction.
	seen := map[uint]bool{in.UserID: true}
	memberIDs := []uint{in.UserID}
	for _, participantID := range in.ParticipantIDs {
		if seen[participantID] {
			continue
		}
		seen[participantID] = true
		memberIDs = append(memberIDs, participantID)
	}

	conv := &models.Conversation{
		Name:      in.Name,
		IsGroup:   in.IsGroup,
		CreatedBy: in.UserID,
	}
	if err := s.chatRepo.CreateConversation(ctx, conv, memberIDs); err != nil {
		return nil, err
	}

	return s.chatRepo.GetConversation(ctx, conv.ID)
}

// GetConversations returns conversations the user participates in,
// most recent activity first.
func (s *ChatService) GetConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.chatRepo.GetUserConversations(ctx, userID)
}

// SendMessage sends a message in a conversation the sender participates in.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageContentLen {
		return nil, models.NewValidationError("Message content too long (max 10000 characters)")
	}

	if _, err := s.chatRepo.GetConversation(ctx, in.ConversationID); err != nil {
		return nil, err
	}
	isParticipant, err := s.chatRepo.IsParticipant(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}

	message := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.UserID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	// Best-effort bump so the conversation sorts to the top of listings
	_ = s.chatRepo.TouchConversation(ctx, in.ConversationID)

	if sender, err := s.userRepo.GetByID(ctx, in.UserID); err == nil {
		message.Sender = sender
	}

	return message, nil
}

// GetMessagesForUser returns messages for a conversation (participant check applied).
func (s *ChatService) GetMessagesForUser(ctx context.Context, convID, userID uint, limit, offset int) ([]*models.Message, error) {
	if _, err := s.chatRepo.GetConversation(ctx, convID); err != nil {
		return nil, err
	}
	isParticipant, err := s.chatRepo.IsParticipant(ctx, convID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.chatRepo.GetMessages(ctx, convID, limit, offset)
}
