package service

import (
	"context"
	"fmt"
	"time"

	"safai/lib"
	"safai/model"
	"safai/platform"

	"gorm.io/gorm"
)

type ChatService struct {
	gateway *GatewayService
}

func NewChatService(gateway *GatewayService) *ChatService {
	return &ChatService{gateway: gateway}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ChatTurn appends the user message, replays the full history through the
// composer and gateway, and appends the assistant answer. All writes plus
// the conversation touch happen in one transaction; any failure, gateway
// included, rolls the whole turn back.
func (s *ChatService) ChatTurn(ctx context.Context, userId string, conversationId uint, message string, attachments string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("no message provided: %w", lib.ErrValidation)
	}

	conv, err := model.GetConversation(conversationId)
	if err != nil {
		return "", lib.ErrNotFound
	}
	if conv.UserId != userId {
		return "", lib.ErrUnauthorized
	}

	var response string
	err = platform.DB.Transaction(func(tx *gorm.DB) error {
		userMsg := &model.Message{
			ConversationId: conversationId,
			Role:           model.RoleUser,
			Content:        message,
			Attachments:    attachments,
		}
		if err := tx.Create(userMsg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		var history []model.Message
		if err := tx.Where("conversation_id = ?", conversationId).
			Order("created_at").
			Find(&history).Error; err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}
		chatHistory := make([]ChatMessage, 0, len(history))
		for _, m := range history {
			chatHistory = append(chatHistory, ChatMessage{Role: m.Role, Content: m.Content})
		}

		completion, err := s.gateway.Complete(ctx, ComposePrompt(conv.Mode, chatHistory))
		if err != nil {
			return err
		}
		response = completion.Text

		assistantMsg := &model.Message{
			ConversationId: conversationId,
			Role:           model.RoleAssistant,
			Content:        response,
		}
		if err := tx.Create(assistantMsg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if conv.Title == model.DefaultTitle {
			updates["title"] = truncate(message, 50)
		}
		if err := tx.Model(&model.Conversation{}).Where("id = ?", conversationId).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

// GetConversationWithMessages returns the mode and ordered messages. The
// existence check deliberately precedes the ownership check, so a missing id
// reads as NotFound even to a non-owner.
func (s *ChatService) GetConversationWithMessages(userId string, conversationId uint) (*model.Conversation, []model.Message, error) {
	conv, err := model.GetConversation(conversationId)
	if err != nil {
		return nil, nil, lib.ErrNotFound
	}
	if conv.UserId != userId {
		return nil, nil, lib.ErrUnauthorized
	}
	messages, err := model.GetMessageList(conversationId)
	if err != nil {
		return nil, nil, err
	}
	return conv, messages, nil
}

// DeleteConversation checks ownership, then removes the conversation and its
// messages atomically.
func (s *ChatService) DeleteConversation(userId string, conversationId uint) error {
	conv, err := model.GetConversation(conversationId)
	if err != nil {
		return lib.ErrNotFound
	}
	if conv.UserId != userId {
		return lib.ErrUnauthorized
	}
	return model.DeleteConversation(conversationId)
}
