package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "convo-api/internal/errors"
	"convo-api/internal/interfaces"
	"convo-api/internal/model"
	"convo-api/internal/repository"
	"convo-api/internal/service"
)

// MessageHandler handles HTTP requests for messages within a conversation.
type MessageHandler struct {
	service interfaces.MessageService
}

func NewMessageHandler(svc interfaces.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// HandleCreateMessage godoc
// @Summary      Create a message
// @Description  Adds a message to a conversation. For a 'user' message an assistant reply is generated; in synchronous mode it is embedded as assistant_response, in deferred mode it appears in the listing later.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string                        true  "Conversation id"
// @Param        message         body      service.CreateMessageRequest  true  "Message to create"
// @Success      201             {object}  MessageResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      401             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /conversations/{conversationID}/messages [post]
func (h *MessageHandler) HandleCreateMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req service.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	message, reply, err := h.service.Create(r.Context(), conversationID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, MessageResponse{Message: *message, AssistantResponse: reply})
}

// HandleListMessages godoc
// @Summary      List messages in a conversation
// @Description  Retrieves messages in creation order, optionally filtered by text content and role, paginated with 1-based page numbers.
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string  true   "Conversation id"
// @Param        q               query     string  false  "Search query matched against message text (case-insensitive)"
// @Param        role            query     string  false  "Filter by role"  Enums(user, assistant)
// @Param        page            query     int     false  "Page number (default 1)"
// @Param        page_size       query     int     false  "Items per page (default 10)"
// @Success      200             {object}  MessagePage
// @Failure      404             {object}  ErrorResponse
// @Router       /conversations/{conversationID}/messages [get]
func (h *MessageHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	params := r.URL.Query()
	page, _ := strconv.Atoi(params.Get("page"))
	pageSize, _ := strconv.Atoi(params.Get("page_size"))
	filter := service.NormalizeFilter(repository.ListFilter{
		Query:    params.Get("q"),
		Role:     params.Get("role"),
		Page:     page,
		PageSize: pageSize,
	})

	messages, count, err := h.service.List(r.Context(), conversationID, filter)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}

	respondWithJSON(w, http.StatusOK, MessagePage{
		Count:    count,
		Next:     nextPageURL(r, filter, count),
		Previous: previousPageURL(r, filter),
		Results:  messages,
	})
}

// HandleGetMessage godoc
// @Summary      Get a message
// @Description  Retrieves a single message from a conversation.
// @Tags         Messages
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation id"
// @Param        messageID       path      string  true  "Message id"
// @Success      200             {object}  model.Message
// @Failure      404             {object}  ErrorResponse
// @Router       /conversations/{conversationID}/messages/{messageID} [get]
func (h *MessageHandler) HandleGetMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")

	message, err := h.service.Get(r.Context(), conversationID, messageID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, message)
}

// HandleDeleteMessage godoc
// @Summary      Delete a message
// @Description  Deletes a single message from a conversation. This cannot be undone.
// @Tags         Messages
// @Param        conversationID  path  string  true  "Conversation id"
// @Param        messageID       path  string  true  "Message id"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /conversations/{conversationID}/messages/{messageID} [delete]
func (h *MessageHandler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")

	if err := h.service.Delete(r.Context(), conversationID, messageID); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nextPageURL builds the URL for the following page, or nil when the current
// page already covers the filtered total.
func nextPageURL(r *http.Request, filter repository.ListFilter, count int) *string {
	if filter.Page*filter.PageSize >= count {
		return nil
	}
	return pageURL(r, filter.Page+1)
}

// previousPageURL builds the URL for the preceding page, or nil on page one.
func previousPageURL(r *http.Request, filter repository.ListFilter) *string {
	if filter.Page <= 1 {
		return nil
	}
	return pageURL(r, filter.Page-1)
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
