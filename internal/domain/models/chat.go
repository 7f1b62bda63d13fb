package models

import "time"

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai"
)

// ChatMessage is one entry in an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest represents a message sent to the assistant through the API.
type ChatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatReply is the assistant answer returned to the dashboard.
type ChatReply struct {
	SessionID string      `json:"sessionId"`
	Intent    IntentType  `json:"intent"`
	Message   ChatMessage `json:"message"`
}
