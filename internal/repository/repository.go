package repository

import (
	"context"

	"convo-api/internal/model"
)

// ListFilter narrows and pages a message listing. Zero values mean
// "no filter"; Page and PageSize are expected to be normalized by the caller.
type ListFilter struct {
	// Query is matched case-insensitively as a substring of the message text.
	Query string
	// Role restricts results to messages with this exact role.
	Role string
	// Page is 1-based.
	Page     int
	PageSize int
}

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateConversation(ctx context.Context, conversation *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error

	CreateMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error)
	// ListMessages returns one page of messages in creation order together
	// with the total number of messages matching the filter.
	ListMessages(ctx context.Context, conversationID string, filter ListFilter) ([]model.Message, int, error)
	DeleteMessage(ctx context.Context, conversationID, messageID string) error
}
