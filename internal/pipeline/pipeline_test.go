package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skonate/griot/internal/corpus"
	"github.com/skonate/griot/internal/model"
)

// fakeBackend serves Ollama-compatible embedding and generation endpoints
// so the whole pipeline runs against local HTTP.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		// Deterministic 3-dimensional vector derived from the text.
		var sum float32
		for _, r := range req.Prompt {
			sum += float32(r % 13)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{sum, float32(len(req.Prompt)), 1},
		})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "mistral",
			"response": "Le festival est consacré à la musique.",
			"done":     true,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testPipelineConfig(t *testing.T, backendURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Store.Dir = filepath.Join(t.TempDir(), "vectors")
	cfg.Cache.Enabled = false
	cfg.Embedding.Provider = "ollama"
	cfg.Embedding.BaseURL = backendURL
	cfg.Embedding.Timeout = 5 * time.Second
	cfg.Embedding.RequestsPerSecond = 1000
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "mistral"
	cfg.LLM.BaseURL = backendURL
	cfg.LLM.Timeout = 5 * time.Second
	return cfg
}

func writeRawFixture(t *testing.T) string {
	t.Helper()
	words := make([]string, 120)
	for i := range words {
		words[i] = fmt.Sprintf("mot%d", i)
	}
	records := []model.RawRecord{
		{
			URL:     "https://lefaso.net/spip.php?article100",
			Title:   "Festival de musique",
			Content: "La musique du concert attire la foule. " + strings.Join(words, " "),
			Date:    "10 octobre 2023",
		},
		{
			URL:     "https://lefaso.net/spip.php?article101",
			Title:   "Exposition de peinture",
			Content: "Une exposition d'art et de peinture ouvre au musée. " + strings.Join(words, " "),
			Date:    "12 octobre 2023",
		},
	}

	path := filepath.Join(t.TempDir(), "raw.json")
	if err := corpus.WriteRaw(path, records); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPipeline_PreprocessIndexAsk(t *testing.T) {
	backend := fakeBackend(t)
	cfg := testPipelineConfig(t, backend.URL)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	rawPath := writeRawFixture(t)
	processedPath := filepath.Join(t.TempDir(), "processed.json")

	pc, err := p.Preprocess(rawPath, processedPath)
	if err != nil {
		t.Fatal(err)
	}
	if pc.Meta.TotalArticles != 2 {
		t.Fatalf("processed %d articles, want 2", pc.Meta.TotalArticles)
	}

	indexed, err := p.Index(context.Background(), processedPath)
	if err != nil {
		t.Fatal(err)
	}
	if indexed != len(pc.Corpus) {
		t.Errorf("indexed %d chunks, corpus has %d", indexed, len(pc.Corpus))
	}
	if p.Store().Count() != indexed {
		t.Errorf("store count = %d, want %d", p.Store().Count(), indexed)
	}

	docs, err := p.Retrieve(context.Background(), "Quel festival de musique ?", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 {
		t.Fatal("expected retrieval results")
	}
	for _, d := range docs {
		if d.SimilarityScore < -1 || d.SimilarityScore > 1 {
			t.Errorf("similarity %f out of range", d.SimilarityScore)
		}
	}

	if err := p.AttachLLM(); err != nil {
		t.Fatal(err)
	}

	answer, err := p.Ask(context.Background(), "Quel festival de musique ?", 2)
	if err != nil {
		t.Fatal(err)
	}
	if answer.Answer == "" {
		t.Error("answer text must not be empty")
	}
	if answer.Question != "Quel festival de musique ?" {
		t.Errorf("question = %q", answer.Question)
	}
	if answer.NumDocsRetrieved != 2 || len(answer.Sources) != 2 {
		t.Errorf("docs retrieved = %d, sources = %d, want 2 and 2",
			answer.NumDocsRetrieved, len(answer.Sources))
	}
	if answer.ResponseTime <= 0 {
		t.Errorf("response time = %f, want > 0", answer.ResponseTime)
	}
	for _, src := range answer.Sources {
		if src.URL == "" || src.Title == "" {
			t.Errorf("source missing metadata: %+v", src)
		}
	}
}

func TestPipeline_AskWithoutLLM(t *testing.T) {
	backend := fakeBackend(t)
	p, err := New(testPipelineConfig(t, backend.URL))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Ask(context.Background(), "question", 0); err == nil {
		t.Error("expected error before AttachLLM")
	}
}

func TestEmbeddingText(t *testing.T) {
	got := EmbeddingText(model.Chunk{Title: "Titre X", Content: "Corps"})
	if got != "Titre: Titre X\n\nContenu: Corps" {
		t.Errorf("embedding text = %q", got)
	}
}
