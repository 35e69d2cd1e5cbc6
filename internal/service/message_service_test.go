package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "convo-api/internal/errors"
	"convo-api/internal/model"
	"convo-api/internal/repository"
	mock_repo "convo-api/internal/repository/mocks"
	"convo-api/internal/responder"
	"convo-api/internal/service"
)

func setupMessageService(t *testing.T, mode service.ReplyMode) (*service.MessageService, *mock_repo.MockRepository) {
	repo := mock_repo.NewMockRepository(t)
	return service.NewMessageService(repo, responder.Generate, mode), repo
}

// Argument matchers keyed on the message role, so expectations can tell the
// user message apart from the assistant reply.
func userMessage() interface{} {
	return mock.MatchedBy(func(m *model.Message) bool { return m.Role == model.RoleUser })
}

func assistantMessage() interface{} {
	return mock.MatchedBy(func(m *model.Message) bool { return m.Role == model.RoleAssistant })
}

func TestParseReplyMode(t *testing.T) {
	mode, err := service.ParseReplyMode("sync")
	require.NoError(t, err)
	assert.Equal(t, service.ReplyModeSync, mode)

	mode, err = service.ParseReplyMode("deferred")
	require.NoError(t, err)
	assert.Equal(t, service.ReplyModeDeferred, mode)

	_, err = service.ParseReplyMode("eventually")
	assert.Error(t, err)
}

func TestMessageService_Create_Sync(t *testing.T) {
	ctx := context.Background()
	conversationID := "conv-1"

	t.Run("Success - user message gets an assistant reply", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(nil).Once()

		message, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "Hi!", Role: "user"})
		require.NoError(t, err)
		require.NotNil(t, message)
		require.NotNil(t, reply)

		assert.Equal(t, conversationID, message.ConversationID)
		assert.Equal(t, model.RoleUser, message.Role)
		assert.Equal(t, "Hi!", message.Text)

		assert.Equal(t, conversationID, reply.ConversationID)
		assert.Equal(t, model.RoleAssistant, reply.Role)
		assert.Equal(t, responder.GreetingReply, reply.Text)
		assert.NotEqual(t, message.ID, reply.ID)
	})

	t.Run("Success - role defaults to user", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(nil).Once()

		message, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "thanks"})
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, message.Role)
		require.NotNil(t, reply)
		assert.Equal(t, responder.ThanksReply, reply.Text)
	})

	t.Run("Success - assistant message is terminal, no reply generated", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(nil).Once()

		message, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "I can help.", Role: "assistant"})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAssistant, message.Role)
		assert.Nil(t, reply)
	})

	t.Run("Success - reply persistence failure is non-fatal", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(errors.New("disk full")).Once()

		message, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "Hi!"})
		require.NoError(t, err, "the user message must not be rolled back")
		assert.NotNil(t, message)
		assert.Nil(t, reply)
	})

	t.Run("Success - conversation deleted before reply write", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(repository.ErrNotFound).Once()

		_, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "Hi!"})
		require.NoError(t, err)
		assert.Nil(t, reply)
	})

	t.Run("Failure - unknown conversation", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(repository.ErrNotFound).Once()

		_, _, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "Hi!"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - empty text", func(t *testing.T) {
		svc, _ := setupMessageService(t, service.ReplyModeSync)

		_, _, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: ""})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - invalid role", func(t *testing.T) {
		svc, _ := setupMessageService(t, service.ReplyModeSync)

		_, _, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "hi", Role: "system"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestMessageService_Create_Deferred(t *testing.T) {
	ctx := context.Background()
	conversationID := "conv-1"

	t.Run("Reply is not embedded and is written in the background", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeDeferred)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(nil).Once()

		message, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "hello there"})
		require.NoError(t, err)
		require.NotNil(t, message)
		assert.Nil(t, reply, "deferred mode must not embed the reply")

		// The assistant write happens after Create returns; wait for it before
		// the mock asserts its expectations.
		svc.Wait()
	})

	t.Run("NotFound during the deferred write is swallowed", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeDeferred)

		repo.On("CreateMessage", mock.Anything, userMessage()).Return(nil).Once()
		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(repository.ErrNotFound).Once()

		_, _, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "hello"})
		require.NoError(t, err)
		svc.Wait()
	})

	t.Run("Assistant message schedules nothing", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeDeferred)

		repo.On("CreateMessage", mock.Anything, assistantMessage()).Return(nil).Once()

		_, reply, err := svc.Create(ctx, conversationID, &service.CreateMessageRequest{Text: "noted", Role: "assistant"})
		require.NoError(t, err)
		assert.Nil(t, reply)
		svc.Wait()
	})
}

func TestMessageService_List(t *testing.T) {
	ctx := context.Background()
	conversationID := "conv-1"

	t.Run("Success - paging parameters are normalized", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		expected := []model.Message{{ID: "msg-1"}}
		normalized := repository.ListFilter{Page: 1, PageSize: 10}
		repo.On("ListMessages", ctx, conversationID, normalized).Return(expected, 25, nil).Once()

		messages, count, err := svc.List(ctx, conversationID, repository.ListFilter{Page: 0, PageSize: -3})
		require.NoError(t, err)
		assert.Equal(t, expected, messages)
		assert.Equal(t, 25, count)
	})

	t.Run("Success - filters pass through", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		filter := repository.ListFilter{Query: "hello", Role: "assistant", Page: 2, PageSize: 5}
		repo.On("ListMessages", ctx, conversationID, filter).Return(nil, 0, nil).Once()

		_, _, err := svc.List(ctx, conversationID, filter)
		assert.NoError(t, err)
	})

	t.Run("Failure - unknown conversation", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("ListMessages", ctx, conversationID, mock.Anything).Return(nil, 0, repository.ErrNotFound).Once()

		_, _, err := svc.List(ctx, conversationID, repository.ListFilter{Page: 1, PageSize: 10})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestMessageService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		expected := &model.Message{ID: "msg-1", ConversationID: "conv-1"}
		repo.On("GetMessage", ctx, "conv-1", "msg-1").Return(expected, nil).Once()

		message, err := svc.Get(ctx, "conv-1", "msg-1")
		require.NoError(t, err)
		assert.Equal(t, expected, message)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)

		repo.On("GetMessage", ctx, "conv-1", "msg-1").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Get(ctx, "conv-1", "msg-1")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)
		repo.On("DeleteMessage", ctx, "conv-1", "msg-1").Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, "conv-1", "msg-1"))
	})

	t.Run("Failure - message not in conversation", func(t *testing.T) {
		svc, repo := setupMessageService(t, service.ReplyModeSync)
		repo.On("DeleteMessage", ctx, "conv-1", "msg-1").Return(repository.ErrNotFound).Once()

		err := svc.Delete(ctx, "conv-1", "msg-1")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}
