package service

import (
	"context"
	"testing"
	"time"

	"safai/lib"
	"safai/model"
	"safai/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConversation(t *testing.T, userId, title, mode string) *model.Conversation {
	t.Helper()
	conv := &model.Conversation{UserId: userId, Title: title, Mode: mode}
	require.NoError(t, model.CreateConversation(conv))
	return conv
}

func TestChatTurnPersistsBothMessages(t *testing.T) {
	setupTestDB(t)
	setupFakeGateway(t, "assistant answer", nil)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "u1", model.DefaultTitle, model.ModeChat)

	response, err := svc.ChatTurn(context.Background(), "u1", conv.ID, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "assistant answer", response)

	messages, err := model.GetMessageList(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
	assert.Equal(t, "assistant answer", messages[1].Content)
}

func TestChatTurnRenamesDefaultTitle(t *testing.T) {
	setupTestDB(t)
	setupFakeGateway(t, "ok", nil)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "u1", model.DefaultTitle, model.ModeChat)

	long := "this message is well over fifty characters long so the title gets cut"
	_, err := svc.ChatTurn(context.Background(), "u1", conv.ID, long, "")
	require.NoError(t, err)

	updated, err := model.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, long[:50], updated.Title)

	// a second turn must not rename again
	_, err = svc.ChatTurn(context.Background(), "u1", conv.ID, "another", "")
	require.NoError(t, err)
	updated, err = model.GetConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, long[:50], updated.Title)
}

func TestChatTurnSendsModeTemplateFirst(t *testing.T) {
	setupTestDB(t)
	last := setupFakeGateway(t, "ok", nil)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "u1", "debugging", model.ModeCode)

	for _, msg := range []string{"first", "second", "third"} {
		_, err := svc.ChatTurn(context.Background(), "u1", conv.ID, msg, "")
		require.NoError(t, err)
	}

	// regardless of prior turns the composed prompt starts with the code template
	require.NotEmpty(t, last.Messages)
	assert.Equal(t, "system", last.Messages[0].Role)
	assert.Equal(t, SystemPrompt(model.ModeCode), last.Messages[0].Content)
	// system template + 2 prior turns + the new user message
	assert.Len(t, last.Messages, 1+2*2+1)
}

func TestChatTurnValidation(t *testing.T) {
	setupTestDB(t)
	setupFakeGateway(t, "ok", nil)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "u1", model.DefaultTitle, model.ModeChat)

	_, err := svc.ChatTurn(context.Background(), "u1", conv.ID, "", "")
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = svc.ChatTurn(context.Background(), "u1", 9999, "hi", "")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = svc.ChatTurn(context.Background(), "intruder", conv.ID, "hi", "")
	assert.ErrorIs(t, err, lib.ErrUnauthorized)
}

func TestGetConversationWithMessagesChecksExistenceBeforeOwnership(t *testing.T) {
	setupTestDB(t)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "owner", model.DefaultTitle, model.ModeChat)

	_, _, err := svc.GetConversationWithMessages("intruder", 4242)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, _, err = svc.GetConversationWithMessages("intruder", conv.ID)
	assert.ErrorIs(t, err, lib.ErrUnauthorized)

	got, messages, err := svc.GetConversationWithMessages("owner", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
	assert.Empty(t, messages)
}

func TestAppendUpdatesListOrdering(t *testing.T) {
	setupTestDB(t)
	setupFakeGateway(t, "ok", nil)
	svc := NewChatService(&GatewayService{})

	older := createConversation(t, "u1", "older", model.ModeChat)
	newer := createConversation(t, "u1", "newer", model.ModeChat)
	require.NoError(t, platform.DB.Model(&model.Conversation{}).Where("id = ?", older.ID).
		Update("updated_at", time.Now().Add(-time.Minute)).Error)

	convs, err := model.GetConversationList("u1", model.ModeChat)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, newer.ID, convs[0].ID)

	// a turn on the older conversation promotes it immediately
	_, err = svc.ChatTurn(context.Background(), "u1", older.ID, "bump", "")
	require.NoError(t, err)

	convs, err = model.GetConversationList("u1", model.ModeChat)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, older.ID, convs[0].ID)
	assert.True(t, convs[0].UpdatedAt.After(convs[1].UpdatedAt) || convs[0].UpdatedAt.Equal(convs[1].UpdatedAt))
}

func TestConversationListFiltersByMode(t *testing.T) {
	setupTestDB(t)
	createConversation(t, "u1", "a", model.ModeChat)
	createConversation(t, "u1", "b", model.ModeResearch)
	createConversation(t, "u2", "c", model.ModeChat)

	convs, err := model.GetConversationList("u1", model.ModeChat)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "a", convs[0].Title)
}

func TestDeleteConversationRemovesMessages(t *testing.T) {
	setupTestDB(t)
	setupFakeGateway(t, "ok", nil)
	svc := NewChatService(&GatewayService{})
	conv := createConversation(t, "u1", model.DefaultTitle, model.ModeChat)

	_, err := svc.ChatTurn(context.Background(), "u1", conv.ID, "hello", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteConversation("intruder", conv.ID), lib.ErrUnauthorized)
	require.NoError(t, svc.DeleteConversation("u1", conv.ID))

	_, err = model.GetConversation(conv.ID)
	assert.Error(t, err)
	messages, err := model.GetMessageList(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
