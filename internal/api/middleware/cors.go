package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/phrazzld/tasks-api/internal/config"
)

// NewCORS builds the CORS middleware from configuration. The default
// configuration allows every origin.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	})
}
