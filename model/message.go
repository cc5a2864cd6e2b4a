package model

import (
	"fmt"
	"time"

	"safai/platform"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message rows are immutable once written; replay order is CreatedAt.
// Attachments and MetaData hold serialized JSON and are never forwarded to
// the completion gateway.
type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationId uint      `gorm:"not null;index:idx_conversation_id_created_at" json:"conversation_id"`
	Role           string    `gorm:"type:varchar(20);not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Attachments    string    `gorm:"type:text" json:"attachments"`
	MetaData       string    `gorm:"type:text" json:"meta_data"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_conversation_id_created_at" json:"created_at"`
}

func CreateMessage(msg *Message) error {
	db := platform.DB
	if err := db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetMessageList returns the conversation's messages in replay order.
func GetMessageList(conversationId uint) ([]Message, error) {
	db := platform.DB
	var messages []Message
	err := db.Where("conversation_id = ?", conversationId).
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		platform.Logger.Warnf("Failed to fetch messages: %v", err)
		return nil, err
	}
	return messages, nil
}
