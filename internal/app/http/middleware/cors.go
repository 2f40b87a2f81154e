package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets browser front-ends call the API and read the document headers.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", InternalTokenHeader, "X-Session-ID"},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Session-ID",
			"X-Quote-ID",
			"X-Policy-Number",
			"X-Document-Warnings",
		},
		MaxAge: 300,
	})
}
