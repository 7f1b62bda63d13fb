package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// AssistantService answers chat messages.
type AssistantService interface {
	Reply(ctx context.Context, sessionID, text string) (models.ChatReply, error)
	History(sessionID string) []models.ChatMessage
	Clear(sessionID string)
}

// ChatHandler exposes the investment assistant.
type ChatHandler struct {
	svc    AssistantService
	logger *zap.Logger
}

// NewChatHandler constructs the HTTP handler adapter.
func NewChatHandler(svc AssistantService, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{svc: svc, logger: logger}
}

// Send posts a message and returns the assistant reply.
func (h *ChatHandler) Send(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and message are required"})
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Warn("chat reply failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// History returns the conversation of a session.
func (h *ChatHandler) History(c *gin.Context) {
	session := c.Param("session")
	c.JSON(http.StatusOK, gin.H{"sessionId": session, "messages": h.svc.History(session)})
}

// Clear forgets a session.
func (h *ChatHandler) Clear(c *gin.Context) {
	h.svc.Clear(c.Param("session"))
	c.Status(http.StatusNoContent)
}
