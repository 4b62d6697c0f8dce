package repository

import (
	"context"
	"errors"

	"mingle/internal/models"
	"mingle/internal/observability"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for chat data operations
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation, memberIDs []uint) error
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error)
	FindDirectConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	IsParticipant(ctx context.Context, convID, userID uint) (bool, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error)
	TouchConversation(ctx context.Context, convID uint) error
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateConversation creates the conversation together with one participant
// row per member in a single transaction; a failed insert leaves no
// half-populated conversation behind.
func (r *chatRepository) CreateConversation(ctx context.Context, conv *models.Conversation, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			participant := models.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         userID,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON conversations.id = cp.conversation_id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachLastMessages(ctx, conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// attachLastMessages resolves the most recent message per conversation in one
// query and hangs it off LastMessage.
func (r *chatRepository) attachLastMessages(ctx context.Context, conversations []*models.Conversation) error {
	if len(conversations) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.ID)
	}

	var latest []*models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("id IN (?)", r.db.Model(&models.Message{}).
			Select("MAX(id)").
			Where("conversation_id IN ?", ids).
			Group("conversation_id"),
		).
		Find(&latest).Error
	if err != nil {
		return err
	}

	byConv := make(map[uint]*models.Message, len(latest))
	for _, m := range latest {
		byConv[m.ConversationID] = m
	}
	for _, c := range conversations {
		c.LastMessage = byConv[c.ID]
	}
	return nil
}

// FindDirectConversation returns the existing 1-on-1 conversation between the
// two users, or nil if there is none.
func (r *chatRepository) FindDirectConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants p1 ON p1.conversation_id = conversations.id AND p1.user_id = ?", userA).
		Joins("JOIN conversation_participants p2 ON p2.conversation_id = conversations.id AND p2.user_id = ?", userB).
		Where("conversations.is_group = ?", false).
		Preload("Participants").
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, convID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetMessages pages through a conversation oldest-first; the message log is
// append-only, so offsets stay stable while clients poll.
func (r *chatRepository) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "get_messages", "messages")
	defer span.End()

	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// TouchConversation bumps updated_at so recent activity sorts first in listings.
func (r *chatRepository) TouchConversation(ctx context.Context, convID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", convID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
