package httpapi

import (
	"net/http"
	"time"

	"climate-api/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Handler wraps mux with the request middleware stack.
func Handler(mux *http.ServeMux) http.Handler {
	return requestID(requestLogger(mux))
}
