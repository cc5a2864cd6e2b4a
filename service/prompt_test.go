package service

import (
	"strings"
	"testing"

	"safai/model"

	"github.com/stretchr/testify/assert"
)

func TestComposePromptPrependsSystemTemplate(t *testing.T) {
	history := []ChatMessage{
		{Role: model.RoleUser, Content: "write a linked list"},
		{Role: model.RoleAssistant, Content: "sure"},
		{Role: model.RoleUser, Content: "now reverse it"},
	}

	composed := ComposePrompt(model.ModeCode, history)

	assert.Len(t, composed, len(history)+1)
	assert.Equal(t, model.RoleSystem, composed[0].Role)
	assert.Equal(t, SystemPrompt(model.ModeCode), composed[0].Content)
	assert.True(t, strings.HasPrefix(composed[0].Content, "You are SafAI Code Mode"))
	assert.Equal(t, history, composed[1:])
}

func TestComposePromptUnknownModeFallsBackToChat(t *testing.T) {
	composed := ComposePrompt("turbo", nil)

	assert.Len(t, composed, 1)
	assert.Equal(t, SystemPrompt(model.ModeChat), composed[0].Content)
	assert.True(t, strings.HasPrefix(composed[0].Content, "You are SafAI,"))
}

func TestComposePromptEachModeHasDistinctTemplate(t *testing.T) {
	seen := map[string]bool{}
	for _, mode := range []string{model.ModeChat, model.ModeResearch, model.ModeLearn, model.ModeCode} {
		prompt := SystemPrompt(mode)
		assert.NotEmpty(t, prompt)
		assert.False(t, seen[prompt], "template for mode %s duplicated", mode)
		seen[prompt] = true
	}
}
