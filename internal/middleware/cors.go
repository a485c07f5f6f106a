package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// AllowCors wraps the handler with a CORS handler. Credentials are allowed so
// browsers send the auth cookie, hence origins must be listed explicitly.
func AllowCors(handler http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler)
}
