package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/skonate/griot/internal/model"
	"github.com/skonate/griot/internal/store"
)

// QA is the slice of the pipeline the API exposes.
type QA interface {
	Ask(ctx context.Context, question string, topK int) (*model.Answer, error)
	Retrieve(ctx context.Context, question string, topK int) ([]model.RetrievalResult, error)
}

// IndexInfo reports the state of the vector index. *store.Store satisfies it.
type IndexInfo interface {
	Count() int
	Dimension() int
	IndexedAt() time.Time
}

// Handlers holds the route implementations.
type Handlers struct {
	qa             QA
	index          IndexInfo
	embeddingModel string
	llmModel       string
}

// NewHandlers creates the route handlers.
func NewHandlers(qa QA, index IndexInfo, embeddingModel, llmModel string) *Handlers {
	return &Handlers{
		qa:             qa,
		index:          index,
		embeddingModel: embeddingModel,
		llmModel:       llmModel,
	}
}

type questionRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

// HandleRoot lists the endpoints.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Culture Burkinabè RAG API",
		"endpoints": map[string]string{
			"ask":      "POST /ask - poser une question",
			"retrieve": "POST /retrieve - rechercher des documents",
			"health":   "GET /health - vérifier le statut",
			"stats":    "GET /stats - statistiques du corpus",
		},
	})
}

// HandleAsk answers a question with the full pipeline.
func (h *Handlers) HandleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuestion(w, r)
	if !ok {
		return
	}

	answer, err := h.qa.Ask(r.Context(), req.Question, req.TopK)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// HandleRetrieve returns ranked documents without generation.
func (h *Handlers) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuestion(w, r)
	if !ok {
		return
	}

	docs, err := h.qa.Retrieve(r.Context(), req.Question, req.TopK)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":     req.Question,
		"documents": docs,
		"count":     len(docs),
	})
}

// HandleHealth reports service health. 503 until a corpus is indexed.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.index.Count() == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "no corpus indexed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"corpus_size": h.index.Count(),
		"model":       h.embeddingModel,
	})
}

// HandleStats reports corpus statistics.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	indexedAt := ""
	if t := h.index.IndexedAt(); !t.IsZero() {
		indexedAt = t.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_documents": h.index.Count(),
		"dimension":       h.index.Dimension(),
		"indexed_at":      indexedAt,
		"embedding_model": h.embeddingModel,
		"llm_model":       h.llmModel,
	})
}

func (h *Handlers) decodeQuestion(w http.ResponseWriter, r *http.Request) (questionRequest, bool) {
	var req questionRequest

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST required"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return req, false
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question vide"})
		return req, false
	}
	return req, true
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotIndexed):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no corpus indexed"})
	case errors.Is(err, store.ErrInvalidTopK):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "top_k must be positive"})
	default:
		fmt.Fprintf(os.Stderr, "api error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
