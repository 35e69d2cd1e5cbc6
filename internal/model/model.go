package model

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Conversation groups an ordered sequence of messages.
type Conversation struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message is a single turn in a conversation. Messages are immutable after
// creation; UpdatedAt is set once alongside CreatedAt.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
