package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"safai/lib"
	"safai/model"
	"safai/service"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService     *service.ChatService
	researchService *service.ResearchService
}

func NewChatController(gateway *service.GatewayService) *ChatController {
	return &ChatController{
		chatService:     service.NewChatService(gateway),
		researchService: service.NewResearchService(gateway),
	}
}

func currentUserId(c *gin.Context) string {
	return c.GetString("UserId")
}

func conversationParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return 0, false
	}
	return uint(id), true
}

// ownershipStatus maps store failures on owned resources onto HTTP statuses.
func ownershipStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, lib.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Index lists the user's conversations in one mode, newest-updated first.
func (ch *ChatController) Index(c *gin.Context) {
	mode := c.DefaultQuery("mode", model.ModeChat)
	conversations, err := model.GetConversationList(currentUserId(c), mode)
	if err != nil {
		logger.Warnf("[%s] Failed to list conversations: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations, "current_mode": mode})
}

func (ch *ChatController) GetConversation(c *gin.Context) {
	conversationId, ok := conversationParam(c)
	if !ok {
		return
	}

	conv, messages, err := ch.chatService.GetConversationWithMessages(currentUserId(c), conversationId)
	if err != nil {
		logger.Warnf("[%s] Failed to fetch conversation %d: %s", c.GetString("requestId"), conversationId, err)
		ownershipStatus(c, err)
		return
	}

	out := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		out = append(out, gin.H{
			"role":        m.Role,
			"content":     m.Content,
			"attachments": m.Attachments,
			"meta_data":   m.MetaData,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": out, "mode": conv.Mode})
}

func (ch *ChatController) NewConversation(c *gin.Context) {
	var input struct {
		Title string `json:"title"`
		Mode  string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.Title == "" {
		input.Title = model.DefaultTitle
	}
	if input.Mode == "" {
		input.Mode = model.ModeChat
	}

	conv := &model.Conversation{
		UserId: currentUserId(c),
		Title:  input.Title,
		Mode:   input.Mode,
	}
	if err := model.CreateConversation(conv); err != nil {
		logger.Warnf("[%s] Failed to create conversation: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": conv.ID})
}

// Chat runs one chat turn. The service rolls back every write on failure, so
// the broad error answer here never leaves a half-written turn behind.
func (ch *ChatController) Chat(c *gin.Context) {
	var input struct {
		ConversationId uint          `json:"conversation_id"`
		Message        string        `json:"message"`
		Attachments    []interface{} `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	attachments := ""
	if len(input.Attachments) > 0 {
		serialized, err := json.Marshal(input.Attachments)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachments"})
			return
		}
		attachments = string(serialized)
	}

	response, err := ch.chatService.ChatTurn(c.Request.Context(), currentUserId(c), input.ConversationId, input.Message, attachments)
	if err != nil {
		logger.Warnf("[%s] Chat turn failed for conversation %d: %s", c.GetString("requestId"), input.ConversationId, err)
		switch {
		case errors.Is(err, lib.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		case errors.Is(err, lib.ErrNotFound), errors.Is(err, lib.ErrUnauthorized):
			ownershipStatus(c, err)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

func (ch *ChatController) DeepResearch(c *gin.Context) {
	var input struct {
		Query          string `json:"query"`
		ConversationId uint   `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := ch.researchService.Research(c.Request.Context(), currentUserId(c), input.Query, input.ConversationId)
	if err != nil {
		logger.Warnf("[%s] Deep research failed: %s", c.GetString("requestId"), err)
		switch {
		case errors.Is(err, lib.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		case errors.Is(err, lib.ErrNotFound), errors.Is(err, lib.ErrUnauthorized):
			ownershipStatus(c, err)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":          result.Result,
		"note_id":         result.NoteId,
		"conversation_id": result.ConversationId,
	})
}

func (ch *ChatController) ResearchNotes(c *gin.Context) {
	notes, err := model.GetResearchNoteList(currentUserId(c))
	if err != nil {
		logger.Warnf("[%s] Failed to list research notes: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list research notes"})
		return
	}

	out := make([]gin.H, 0, len(notes))
	for _, n := range notes {
		out = append(out, gin.H{
			"id":         n.ID,
			"title":      n.Title,
			"content":    n.Content,
			"created_at": n.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"notes": out})
}

func (ch *ChatController) DeleteConversation(c *gin.Context) {
	conversationId, ok := conversationParam(c)
	if !ok {
		return
	}

	if err := ch.chatService.DeleteConversation(currentUserId(c), conversationId); err != nil {
		logger.Warnf("[%s] Failed to delete conversation %d: %s", c.GetString("requestId"), conversationId, err)
		ownershipStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
