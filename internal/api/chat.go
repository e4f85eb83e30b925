package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yakov100/recipe-book-sub000/internal/service"
)

// ChatHandler exposes the AI recipe assistant.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new ChatHandler instance. The chat service may be
// nil when no API key is configured; the routes then answer 503.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat/:conversation", h.Ask)
}

// Ask forwards one user message to the assistant. Sending a new message on
// the same conversation cancels any answer still in flight.
func (h *ChatHandler) Ask(c *gin.Context) {
	if h.chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The assistant is not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.chat.Ask(c.Request.Context(), c.Param("conversation"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
