package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "convo-api/internal/errors"
	"convo-api/internal/interfaces"
	"convo-api/internal/service"
)

// ConversationHandler handles HTTP requests for conversations.
type ConversationHandler struct {
	service interfaces.ConversationService
}

func NewConversationHandler(svc interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

// HandleCreateConversation godoc
// @Summary      Create a conversation
// @Description  Creates a new conversation with an optional title and a required description.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversation  body      service.CreateConversationRequest  true  "Conversation to create"
// @Success      201           {object}  model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Failure      401           {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /conversations [post]
func (h *ConversationHandler) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req service.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	conversation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conversation)
}

// HandleGetConversation godoc
// @Summary      Get a conversation
// @Description  Retrieves a conversation by id. With a search query the conversation must also match it (case-insensitive substring on title or description), otherwise 404 is returned.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true   "Conversation id"
// @Param        q               query     string  false  "Search query matched against title and description"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /conversations/{conversationID} [get]
func (h *ConversationHandler) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	query := r.URL.Query().Get("q")

	conversation, err := h.service.Get(r.Context(), conversationID, query)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversation)
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Deletes a conversation and all its messages. This cannot be undone.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation id"
// @Success      200             {object}  StatusResponse
// @Failure      401             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /conversations/{conversationID} [delete]
func (h *ConversationHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	if err := h.service.Delete(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
