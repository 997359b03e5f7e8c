// Package api serves the question-answering pipeline over HTTP.
package api

import (
	"net/http"
	"time"
)

// New builds the HTTP server with all routes attached.
func New(addr string, h *Handlers) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleRoot)
	mux.HandleFunc("/ask", h.HandleAsk)
	mux.HandleFunc("/retrieve", h.HandleRetrieve)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/stats", h.HandleStats)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
