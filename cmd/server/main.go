package main

import (
	"os"

	"convo-api/internal/app"
)

// @title           Conversations API
// @version         1.0
// @description     CRUD API for conversations and messages with a rule-based assistant responder.
// @BasePath        /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name X-API-Key

func main() {
	os.Exit(app.Run())
}
