package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "convo-api/internal/errors"
	"convo-api/internal/model"
	"convo-api/internal/repository"
)

const defaultPageSize = 10

// ReplyMode selects how an assistant reply to a user message is produced.
type ReplyMode string

const (
	// ReplyModeSync generates and persists the reply before the create-message
	// call returns, embedding it in the result.
	ReplyModeSync ReplyMode = "sync"
	// ReplyModeDeferred schedules the reply on a background goroutine and
	// returns immediately. Best effort: no retry, no durability.
	ReplyModeDeferred ReplyMode = "deferred"
)

// ParseReplyMode validates a configured reply mode string.
func ParseReplyMode(s string) (ReplyMode, error) {
	switch ReplyMode(s) {
	case ReplyModeSync, ReplyModeDeferred:
		return ReplyMode(s), nil
	default:
		return "", fmt.Errorf("unknown reply mode %q (expected %q or %q)", s, ReplyModeSync, ReplyModeDeferred)
	}
}

// CreateMessageRequest is the payload for posting a message to a conversation.
// Role defaults to "user" when omitted.
type CreateMessageRequest struct {
	Text string `json:"text" validate:"required" example:"Hello, how are you?"`
	Role string `json:"role" validate:"omitempty,oneof=user assistant" example:"user"`
}

type MessageService struct {
	repo     repository.Repository
	generate func(string) string
	mode     ReplyMode

	// pending tracks in-flight deferred reply writes so tests (and a graceful
	// shutdown) can wait for them.
	pending sync.WaitGroup
}

// NewMessageService builds a message service around a storage backend and a
// reply generator (normally responder.Generate).
func NewMessageService(repo repository.Repository, generate func(string) string, mode ReplyMode) *MessageService {
	return &MessageService{repo: repo, generate: generate, mode: mode}
}

// Create validates and persists a message. For user messages it additionally
// produces an assistant reply according to the configured mode; the returned
// reply is non-nil only in sync mode and only if the reply was persisted.
//
// Reply failures are never fatal: once the user message commits, Create
// reports success regardless of what happens to the reply.
func (s *MessageService) Create(ctx context.Context, conversationID string, req *CreateMessageRequest) (*model.Message, *model.Message, error) {
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, nil, fmt.Errorf("%w: role must be one of 'user' or 'assistant'", app_errors.ErrValidation)
	}
	if req.Text == "" {
		return nil, nil, fmt.Errorf("%w: text is required", app_errors.ErrValidation)
	}

	now := time.Now().UTC()
	message := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Text:           req.Text,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, app_errors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("could not create message: %w", err)
	}

	if role != model.RoleUser {
		return message, nil, nil
	}

	switch s.mode {
	case ReplyModeDeferred:
		s.scheduleReply(message)
		return message, nil, nil
	default:
		reply, err := s.persistReply(ctx, message)
		if err != nil {
			slog.Warn("Failed to persist assistant reply",
				"conversation_id", conversationID, "message_id", message.ID, "error", err)
			return message, nil, nil
		}
		return message, reply, nil
	}
}

// scheduleReply runs the reply write on its own goroutine, detached from the
// request context. The returned channel reports the outcome and is closed when
// the write finishes, so callers and tests can await it with a timeout.
func (s *MessageService) scheduleReply(userMessage *model.Message) <-chan error {
	done := make(chan error, 1)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(done)

		_, err := s.persistReply(context.Background(), userMessage)
		if err != nil {
			slog.Error("Deferred assistant reply failed",
				"conversation_id", userMessage.ConversationID, "message_id", userMessage.ID, "error", err)
			done <- err
		}
	}()
	return done
}

// persistReply generates and stores the assistant reply for a user message.
// If the conversation was deleted in the meantime the NotFound is swallowed:
// writing the reply anyway would resurrect a dangling orphan row.
func (s *MessageService) persistReply(ctx context.Context, userMessage *model.Message) (*model.Message, error) {
	now := time.Now().UTC()
	reply := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: userMessage.ConversationID,
		Role:           model.RoleAssistant,
		Text:           s.generate(userMessage.Text),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateMessage(ctx, reply); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("Conversation deleted before assistant reply could be written, dropping reply",
				"conversation_id", userMessage.ConversationID)
			return nil, nil
		}
		return nil, err
	}
	return reply, nil
}

// Wait blocks until all scheduled deferred replies have finished.
func (s *MessageService) Wait() {
	s.pending.Wait()
}

// Get retrieves a single message within a conversation.
func (s *MessageService) Get(ctx context.Context, conversationID, messageID string) (*model.Message, error) {
	message, err := s.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("could not get message: %w", err)
	}
	return message, nil
}

// List returns one page of a conversation's messages in creation order,
// together with the total count matching the filter. Page and page size are
// normalized to 1 and the default size when out of range.
func (s *MessageService) List(ctx context.Context, conversationID string, filter repository.ListFilter) ([]model.Message, int, error) {
	filter = NormalizeFilter(filter)

	messages, count, err := s.repo.ListMessages(ctx, conversationID, filter)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, app_errors.ErrNotFound
		}
		return nil, 0, fmt.Errorf("could not list messages: %w", err)
	}
	return messages, count, nil
}

// Delete removes a single message from a conversation.
func (s *MessageService) Delete(ctx context.Context, conversationID, messageID string) error {
	err := s.repo.DeleteMessage(ctx, conversationID, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return app_errors.ErrNotFound
		}
		return fmt.Errorf("could not delete message: %w", err)
	}
	return nil
}

// NormalizeFilter clamps paging parameters to sane values. Invalid values are
// coerced rather than rejected.
func NormalizeFilter(filter repository.ListFilter) repository.ListFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	return filter
}
