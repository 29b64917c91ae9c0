package security

import (
	"net/http"
)

// CORSConfig holds cross-origin and API security headers configuration
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string

	// Additional security headers
	XContentTypeOptions string
	XFrameOptions       string
	ReferrerPolicy      string
}

// DefaultCORSConfig returns defaults suitable for a browser-facing sync API:
// the endpoints carry no credentials, so any origin may call them.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",

		XContentTypeOptions: "nosniff",
		XFrameOptions:       "DENY",
		ReferrerPolicy:      "strict-origin-when-cross-origin",
	}
}

// CORSMiddleware applies CORS and security headers, and answers preflights
type CORSMiddleware struct {
	config CORSConfig
}

// NewCORSMiddleware creates a new CORS middleware
func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	return &CORSMiddleware{
		config: config,
	}
}

// Middleware returns the HTTP middleware function
func (m *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.applyHeaders(w)

		// Answer preflight requests directly
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *CORSMiddleware) applyHeaders(w http.ResponseWriter) {
	headers := w.Header()

	headers.Set("Access-Control-Allow-Origin", m.config.AllowOrigin)
	headers.Set("Access-Control-Allow-Methods", m.config.AllowMethods)
	headers.Set("Access-Control-Allow-Headers", m.config.AllowHeaders)

	headers.Set("X-Content-Type-Options", m.config.XContentTypeOptions)
	headers.Set("X-Frame-Options", m.config.XFrameOptions)
	headers.Set("Referrer-Policy", m.config.ReferrerPolicy)
}
