package interfaces

import (
	"context"

	"convo-api/internal/model"
	"convo-api/internal/repository"
	"convo-api/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows
// for decoupling (e.g., API layer from Service layer) and easier testing via
// mocking.

// ConversationService defines the contract for conversation business logic.
type ConversationService interface {
	Create(ctx context.Context, req *service.CreateConversationRequest) (*model.Conversation, error)
	Get(ctx context.Context, conversationID, query string) (*model.Conversation, error)
	Delete(ctx context.Context, conversationID string) error
}

// MessageService defines the contract for the message workflow: persisting
// messages, producing assistant replies, and paging through history.
type MessageService interface {
	Create(ctx context.Context, conversationID string, req *service.CreateMessageRequest) (*model.Message, *model.Message, error)
	Get(ctx context.Context, conversationID, messageID string) (*model.Message, error)
	List(ctx context.Context, conversationID string, filter repository.ListFilter) ([]model.Message, int, error)
	Delete(ctx context.Context, conversationID, messageID string) error
}
