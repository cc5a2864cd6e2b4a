package model

import (
	"fmt"
	"time"

	"safai/platform"
)

// ResearchNote stores a deep-research answer independently of the
// conversation it was produced in; deleting the conversation leaves the note
// untouched. Sources is carried in the schema but no writer fills it yet.
type ResearchNote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    string    `gorm:"type:varchar(80);not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Sources   string    `gorm:"type:text" json:"sources"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func CreateResearchNote(note *ResearchNote) error {
	db := platform.DB
	if err := db.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create research note: %w", err)
	}
	return nil
}

// GetResearchNoteList returns the user's notes, newest first.
func GetResearchNoteList(userId string) ([]ResearchNote, error) {
	db := platform.DB
	var notes []ResearchNote
	err := db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		platform.Logger.Warnf("Failed to fetch research notes: %v", err)
		return nil, err
	}
	return notes, nil
}
