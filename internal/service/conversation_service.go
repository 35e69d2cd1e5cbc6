package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "convo-api/internal/errors"
	"convo-api/internal/model"
	"convo-api/internal/repository"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 500
)

// CreateConversationRequest is the payload for creating a conversation.
type CreateConversationRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200" example:"My First Conversation"`
	Description string  `json:"description" validate:"required,max=500" example:"A conversation about AI assistants"`
}

type ConversationService struct {
	repo repository.Repository
}

func NewConversationService(repo repository.Repository) *ConversationService {
	return &ConversationService{repo: repo}
}

// Create persists a new conversation with server-assigned id and timestamps.
func (s *ConversationService) Create(ctx context.Context, req *CreateConversationRequest) (*model.Conversation, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", app_errors.ErrValidation)
	}
	if len(req.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", app_errors.ErrValidation, maxDescriptionLength)
	}
	if req.Title != nil && len(*req.Title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", app_errors.ErrValidation, maxTitleLength)
	}

	now := time.Now().UTC()
	conversation := &model.Conversation{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}

	slog.Info("Created conversation", "conversation_id", conversation.ID)
	return conversation, nil
}

// Get retrieves a conversation by id. A non-empty query additionally requires
// a case-insensitive substring match on the title or description; a fetched
// conversation that does not satisfy the query is reported as not found.
func (s *ConversationService) Get(ctx context.Context, conversationID, query string) (*model.Conversation, error) {
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("could not get conversation: %w", err)
	}

	if query != "" && !matchesQuery(conversation, query) {
		return nil, app_errors.ErrNotFound
	}

	return conversation, nil
}

// Delete removes a conversation and all its messages.
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	err := s.repo.DeleteConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return app_errors.ErrNotFound
		}
		return fmt.Errorf("could not delete conversation: %w", err)
	}

	slog.Info("Deleted conversation", "conversation_id", conversationID)
	return nil
}

func matchesQuery(conversation *model.Conversation, query string) bool {
	q := strings.ToLower(query)
	if conversation.Title != nil && strings.Contains(strings.ToLower(*conversation.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(conversation.Description), q)
}
