// The `_test` suffix creates a "black box" test package: only the api
// package's exported identifiers are visible, which keeps the tests honest
// about the public surface.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"convo-api/internal/api"
	app_errors "convo-api/internal/errors"
	"convo-api/internal/interfaces/mocks"
	"convo-api/internal/model"
	"convo-api/internal/service"
)

func setupConversationHandler(t *testing.T) (*api.ConversationHandler, *mocks.MockConversationService) {
	mockSvc := mocks.NewMockConversationService(t)
	return api.NewConversationHandler(mockSvc), mockSvc
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{conversationID}`) into the request's context; without it
// chi.URLParam returns an empty string in handler unit tests.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func decodeErrorResponse(t *testing.T, body []byte) api.ErrorResponse {
	var envelope api.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestConversationHandler_HandleCreateConversation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)

		expected := &model.Conversation{ID: "conv-1", Description: "A conversation about AI assistants"}
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *service.CreateConversationRequest) bool {
			return req.Description == "A conversation about AI assistants" && *req.Title == "My First Conversation"
		})).Return(expected, nil).Once()

		body := `{"title": "My First Conversation", "description": "A conversation about AI assistants"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleCreateConversation(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, expected.ID, returned.ID)
	})

	t.Run("Failure - missing description", func(t *testing.T) {
		handler, _ := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(`{"title": "no description"}`))
		rr := httptest.NewRecorder()
		handler.HandleCreateConversation(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeErrorResponse(t, rr.Body.Bytes())
		assert.Equal(t, "error", envelope.Status)
		assert.Equal(t, http.StatusBadRequest, envelope.Code)
		assert.Equal(t, "Validation error", envelope.Message)
		assert.Contains(t, rr.Body.String(), "Field 'Description' failed on the 'required' tag")
	})

	t.Run("Failure - invalid JSON", func(t *testing.T) {
		handler, _ := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.HandleCreateConversation(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - service error maps to 500", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(`{"description": "d"}`))
		rr := httptest.NewRecorder()
		handler.HandleCreateConversation(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Internal server error")
	})
}

func TestConversationHandler_HandleGetConversation(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)

		expected := &model.Conversation{ID: conversationID, Description: "desc"}
		mockSvc.On("Get", mock.Anything, conversationID, "").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleGetConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - search query forwarded", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)

		mockSvc.On("Get", mock.Anything, conversationID, "assistants").
			Return(&model.Conversation{ID: conversationID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+conversationID+"?q=assistants", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleGetConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Get", mock.Anything, conversationID, "").Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleGetConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeErrorResponse(t, rr.Body.Bytes())
		assert.Equal(t, http.StatusNotFound, envelope.Code)
		assert.Equal(t, "Resource not found", envelope.Message)
	})
}

func TestConversationHandler_HandleDeleteConversation(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Delete", mock.Anything, conversationID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDeleteConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Delete", mock.Anything, conversationID).Return(app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDeleteConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
