package types

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation represents a chat session between a user and the assistant.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single message in a conversation. Messages are
// immutable once appended; ordering is append order.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	Mood           *string     `json:"mood,omitempty"`
	MoodConfidence *float64    `json:"mood_confidence,omitempty"`
	AudioObject    *string     `json:"audio_object,omitempty"`
	Language       *string     `json:"language,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ConversationWithMessages includes a conversation and its messages.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}
