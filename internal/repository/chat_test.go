package repository

import (
	"context"
	"fmt"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_ConversationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conv := &models.Conversation{CreatedBy: alice.ID}
	require.NoError(t, repo.CreateConversation(ctx, conv, []uint{alice.ID, bob.ID}))
	require.NotZero(t, conv.ID)

	got, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 2)

	isPart, err := repo.IsParticipant(ctx, conv.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, isPart)

	outsider := createTestUser(t, db, "outsider")
	isPart, err = repo.IsParticipant(ctx, conv.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, isPart)
}

func TestChatRepository_CreateConversation_RollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	// The duplicate member violates the participants' composite key; the
	// whole creation must roll back, not leave a memberless conversation.
	conv := &models.Conversation{CreatedBy: alice.ID}
	err := repo.CreateConversation(ctx, conv, []uint{alice.ID, alice.ID})
	require.Error(t, err)

	var convCount, participantCount int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&convCount).Error)
	require.NoError(t, db.Model(&models.ConversationParticipant{}).Count(&participantCount).Error)
	assert.Zero(t, convCount)
	assert.Zero(t, participantCount)
}

func TestChatRepository_GetUserConversations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice<->bob with one message, bob<->carol without alice
	ab := &models.Conversation{CreatedBy: alice.ID}
	require.NoError(t, repo.CreateConversation(ctx, ab, []uint{alice.ID, bob.ID}))

	bc := &models.Conversation{CreatedBy: bob.ID}
	require.NoError(t, repo.CreateConversation(ctx, bc, []uint{bob.ID, carol.ID}))

	require.NoError(t, repo.CreateMessage(ctx, &models.Message{ConversationID: ab.ID, SenderID: bob.ID, Content: "hey"}))
	require.NoError(t, repo.CreateMessage(ctx, &models.Message{ConversationID: ab.ID, SenderID: alice.ID, Content: "hi back"}))

	convs, err := repo.GetUserConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, ab.ID, convs[0].ID)
	assert.Len(t, convs[0].Participants, 2)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "hi back", convs[0].LastMessage.Content)
	require.NotNil(t, convs[0].LastMessage.Sender)
	assert.Equal(t, "alice", convs[0].LastMessage.Sender.Username)
}

func TestChatRepository_FindDirectConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	found, err := repo.FindDirectConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	conv := &models.Conversation{CreatedBy: alice.ID}
	require.NoError(t, repo.CreateConversation(ctx, conv, []uint{alice.ID, bob.ID}))

	found, err = repo.FindDirectConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conv.ID, found.ID)

	// Order of the pair does not matter
	found, err = repo.FindDirectConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conv.ID, found.ID)
}

func TestChatRepository_GetMessages_AscendingPages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	conv := &models.Conversation{CreatedBy: alice.ID}
	require.NoError(t, repo.CreateConversation(ctx, conv, []uint{alice.ID}))

	contents := []string{"one", "two", "three"}
	for i, c := range contents {
		msg := &models.Message{ConversationID: conv.ID, SenderID: alice.ID, Content: c}
		require.NoError(t, repo.CreateMessage(ctx, msg))
		// Stagger timestamps so ordering does not depend on insert resolution
		require.NoError(t, db.Exec("UPDATE messages SET created_at = datetime('now', ?) WHERE id = ?",
			fmt.Sprintf("-%d minutes", len(contents)-i), msg.ID).Error)
	}

	messages, err := repo.GetMessages(ctx, conv.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)
	require.NotNil(t, messages[0].Sender)
	assert.Equal(t, "alice", messages[0].Sender.Username)

	// Offset pages keep chronological order
	messages, err = repo.GetMessages(ctx, conv.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "two", messages[0].Content)
	assert.Equal(t, "three", messages[1].Content)
}
