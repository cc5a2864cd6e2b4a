package model

import (
	"errors"
	"fmt"
	"time"

	"safai/platform"

	"gorm.io/gorm"
)

// DefaultTitle is the placeholder given to conversations created without an
// explicit title; the first user message renames it.
const DefaultTitle = "New Chat"

// Conversation modes select the system prompt template and categorize the
// conversation. The mode never changes after creation.
const (
	ModeChat     = "chat"
	ModeResearch = "research"
	ModeLearn    = "learn"
	ModeCode     = "code"
)

type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    string    `gorm:"type:varchar(80);not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Mode      string    `gorm:"type:varchar(20);default:chat" json:"mode"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateConversation(conv *Conversation) error {
	db := platform.DB
	if err := db.Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversation looks the row up by id alone; the ownership check lives
// with the caller, after the existence check.
func GetConversation(id uint) (*Conversation, error) {
	var conv Conversation
	db := platform.DB
	if err := db.Where("id = ?", id).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &conv, nil
}

// GetConversationList returns the user's conversations in the given mode,
// newest-updated first.
func GetConversationList(userId string, mode string) ([]Conversation, error) {
	db := platform.DB
	var convs []Conversation
	err := db.Where("user_id = ? AND mode = ?", userId, mode).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		platform.Logger.Warnf("Failed to fetch conversations: %v", err)
		return nil, err
	}
	return convs, nil
}

// DeleteConversation removes the conversation and all of its messages as one
// atomic unit so an interruption never leaves orphaned messages.
func DeleteConversation(id uint) error {
	db := platform.DB
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&Conversation{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		return nil
	})
}
