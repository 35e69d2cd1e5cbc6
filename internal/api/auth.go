package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	app_errors "convo-api/internal/errors"
)

// APIKeyHeader is the header clients use to authenticate mutating requests.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey returns middleware that rejects requests whose X-API-Key
// header does not match the configured key. The comparison is constant-time
// so the key cannot be probed byte by byte through response timing.
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				respondWithError(w, fmt.Errorf("%w: missing %s header", app_errors.ErrAuthentication, APIKeyHeader))
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				respondWithError(w, fmt.Errorf("%w: invalid API key", app_errors.ErrAuthentication))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
