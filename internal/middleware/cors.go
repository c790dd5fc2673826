package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS aplica rs/cors con la lista de orígenes permitidos (scheme + host, sin "/" final).
// Lista vacía => rs/cors permite cualquier origen (modo dev).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept"},
	})
	return c.Handler
}
