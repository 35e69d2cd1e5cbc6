package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "convo-api/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
//
// GET endpoints are public; mutating endpoints require the X-API-Key header.
func NewRouter(conversationHandler *ConversationHandler, messageHandler *MessageHandler, apiKey string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Read endpoints, unauthenticated.
		r.Get("/conversations/{conversationID}", conversationHandler.HandleGetConversation)
		r.Get("/conversations/{conversationID}/messages", messageHandler.HandleListMessages)
		r.Get("/conversations/{conversationID}/messages/{messageID}", messageHandler.HandleGetMessage)

		// Mutating endpoints, behind the API key check.
		r.Group(func(r chi.Router) {
			r.Use(RequireAPIKey(apiKey))

			r.Post("/conversations", conversationHandler.HandleCreateConversation)
			r.Delete("/conversations/{conversationID}", conversationHandler.HandleDeleteConversation)
			r.Post("/conversations/{conversationID}/messages", messageHandler.HandleCreateMessage)
			r.Delete("/conversations/{conversationID}/messages/{messageID}", messageHandler.HandleDeleteMessage)
		})
	})

	return r
}
