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

type ResearchService struct {
	gateway *GatewayService
}

func NewResearchService(gateway *GatewayService) *ResearchService {
	return &ResearchService{gateway: gateway}
}

const researchPromptTemplate = `Conduct comprehensive research on: %s

Provide:
1. Overview and Context
2. Key Concepts and Definitions
3. Important Facts and Statistics
4. Different Perspectives/Approaches
5. Practical Applications
6. Common Misconceptions
7. Learning Resources
8. Summary and Key Takeaways

Be thorough, educational, and well-structured.`

// researchMessagePrefix marks the recorded user message as a research
// request when the conversation is replayed.
const researchMessagePrefix = "🔍 Deep Research: "

// ResearchResult is what a deep-research call hands back to the client.
type ResearchResult struct {
	Result         string `json:"result"`
	NoteId         uint   `json:"note_id"`
	ConversationId uint   `json:"conversation_id"`
}

// Research runs the eight-section research prompt through the gateway and
// persists the outcome redundantly: a user/assistant message pair in the
// conversation plus a standalone note that outlives the conversation.
// Those writes and the conversation touch commit as one transaction.
func (s *ResearchService) Research(ctx context.Context, userId string, query string, conversationId uint) (*ResearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("no query provided: %w", lib.ErrValidation)
	}

	var conv *model.Conversation
	if conversationId == 0 {
		conv = &model.Conversation{
			UserId: userId,
			Title:  "Research: " + truncate(query, 50),
			Mode:   model.ModeResearch,
		}
		if err := model.CreateConversation(conv); err != nil {
			return nil, err
		}
		conversationId = conv.ID
	} else {
		existing, err := model.GetConversation(conversationId)
		if err != nil {
			return nil, lib.ErrNotFound
		}
		if existing.UserId != userId {
			return nil, lib.ErrUnauthorized
		}
		conv = existing
	}

	prompt := fmt.Sprintf(researchPromptTemplate, query)
	messages := ComposePrompt(model.ModeResearch, []ChatMessage{{Role: model.RoleUser, Content: prompt}})
	completion, err := s.gateway.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	note := &model.ResearchNote{
		UserId:  userId,
		Title:   truncate(query, 200),
		Content: completion.Text,
	}
	err = platform.DB.Transaction(func(tx *gorm.DB) error {
		userMsg := &model.Message{
			ConversationId: conversationId,
			Role:           model.RoleUser,
			Content:        researchMessagePrefix + query,
		}
		if err := tx.Create(userMsg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		assistantMsg := &model.Message{
			ConversationId: conversationId,
			Role:           model.RoleAssistant,
			Content:        completion.Text,
		}
		if err := tx.Create(assistantMsg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		if err := tx.Create(note).Error; err != nil {
			return fmt.Errorf("failed to create research note: %w", err)
		}
		if err := tx.Model(&model.Conversation{}).Where("id = ?", conversationId).
			Update("updated_at", time.Now()).Error; err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ResearchResult{
		Result:         completion.Text,
		NoteId:         note.ID,
		ConversationId: conversationId,
	}, nil
}
