package assistant

import (
	"slices"
	"sync"

	"github.com/mamadbah2/realty/internal/domain/models"
)

// maxHistory bounds how many messages a session keeps.
const maxHistory = 50

// SessionManager handles per-session conversation history.
type SessionManager struct {
	sessions map[string][]models.ChatMessage
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string][]models.ChatMessage),
	}
}

// History returns a copy of the messages of a session and whether it exists.
func (sm *SessionManager) History(sessionID string) ([]models.ChatMessage, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	history, exists := sm.sessions[sessionID]
	return slices.Clone(history), exists
}

// Append adds messages to a session, creating it when needed, and drops the oldest
// messages beyond maxHistory.
func (sm *SessionManager) Append(sessionID string, messages ...models.ChatMessage) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	history := append(sm.sessions[sessionID], messages...)
	if len(history) > maxHistory {
		history = slices.Clone(history[len(history)-maxHistory:])
	}
	sm.sessions[sessionID] = history
}

// ClearSession removes a session.
func (sm *SessionManager) ClearSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}
