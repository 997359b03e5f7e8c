// Package pipeline wires the processing stages together: preprocessing raw
// records, indexing the processed corpus, and answering questions against
// the index.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/corpus"
	"github.com/skonate/griot/internal/embed"
	"github.com/skonate/griot/internal/llm"
	"github.com/skonate/griot/internal/model"
	"github.com/skonate/griot/internal/retrieve"
	"github.com/skonate/griot/internal/store"
	"github.com/skonate/griot/internal/worker"
)

// Pipeline holds the shared state behind every griot command.
type Pipeline struct {
	cfg       *model.Config
	cache     cache.Cache
	store     *store.Store
	embedder  *embed.Client
	retriever *retrieve.Retriever
	answerer  *llm.Answerer
}

// New opens the vector store and builds the embedding client. The LLM is
// attached separately because only ask and serve need one.
func New(cfg *model.Config) (*Pipeline, error) {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	embedder, err := embed.New(cfg.Embedding, c)
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	st, err := store.Open(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		cache:     c,
		store:     st,
		embedder:  embedder,
		retriever: retrieve.New(embedder, st, cfg.Retrieval.TopK),
	}, nil
}

// AttachLLM builds the configured generation provider. Required before Ask.
func (p *Pipeline) AttachLLM() error {
	provider, err := llm.NewProvider(p.cfg.LLM)
	if err != nil {
		return err
	}
	p.answerer = llm.NewAnswerer(provider, p.cfg.LLM)
	return nil
}

// Cache returns the shared page/embedding cache, which may be nil.
func (p *Pipeline) Cache() cache.Cache {
	return p.cache
}

// Store exposes the vector index for stats reporting.
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// Preprocess cleans the raw article file and writes the processed corpus.
func (p *Pipeline) Preprocess(inPath, outPath string) (*model.ProcessedCorpus, error) {
	raw, err := corpus.LoadRaw(inPath)
	if err != nil {
		return nil, fmt.Errorf("load raw articles: %w", err)
	}

	pre, err := corpus.NewPreprocessor(p.cfg.Preprocess, inPath)
	if err != nil {
		return nil, err
	}

	pc := pre.Process(raw)
	if err := corpus.WriteProcessed(outPath, pc); err != nil {
		return nil, fmt.Errorf("write processed corpus: %w", err)
	}
	return pc, nil
}

// EmbeddingText renders a chunk into the text that gets embedded. Title and
// content are embedded together so questions about a topic also match
// headline-only mentions.
func EmbeddingText(ch model.Chunk) string {
	return fmt.Sprintf("Titre: %s\n\nContenu: %s", ch.Title, ch.Content)
}

// Index embeds the processed corpus and rebuilds the vector store. Returns
// how many chunks were indexed.
func (p *Pipeline) Index(ctx context.Context, corpusPath string) (int, error) {
	pc, err := corpus.LoadProcessed(corpusPath)
	if err != nil {
		return 0, fmt.Errorf("load processed corpus: %w", err)
	}
	if len(pc.Corpus) == 0 {
		return 0, fmt.Errorf("processed corpus %s is empty", corpusPath)
	}

	texts := make([]string, len(pc.Corpus))
	for i, ch := range pc.Corpus {
		texts[i] = EmbeddingText(ch)
	}

	p.logf("embedding %d chunks (batch size %d, %d workers)\n",
		len(texts), p.cfg.Embedding.BatchSize, p.cfg.Embedding.Workers)

	batcher := worker.NewBatchEmbedder(p.embedder, p.cfg.Embedding.BatchSize, p.cfg.Embedding.Workers)
	embeddings, err := batcher.EmbedAll(ctx, texts)
	if err != nil {
		return 0, err
	}

	if err := p.store.Rebuild(ctx, pc.Corpus, embeddings); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	return len(pc.Corpus), nil
}

// Retrieve returns the chunks closest to the question. topK 0 means the
// configured default.
func (p *Pipeline) Retrieve(ctx context.Context, question string, topK int) ([]model.RetrievalResult, error) {
	return p.retriever.Retrieve(ctx, question, topK)
}

// Ask runs the full question-answering pipeline: retrieve, prompt,
// generate, and assemble the answer with its sources and timing.
func (p *Pipeline) Ask(ctx context.Context, question string, topK int) (*model.Answer, error) {
	if p.answerer == nil {
		return nil, fmt.Errorf("no LLM attached")
	}

	start := time.Now()

	docs, err := p.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}
	p.logf("retrieved %d documents\n", len(docs))

	resp, err := p.answerer.Answer(ctx, question, docs)
	if err != nil {
		return nil, err
	}

	sources := make([]model.Source, len(docs))
	for i, doc := range docs {
		sources[i] = model.Source{
			Title:          doc.Title,
			URL:            doc.URL,
			Date:           doc.Date,
			Content:        doc.Content,
			RelevanceScore: doc.SimilarityScore,
		}
	}

	return &model.Answer{
		Question:         question,
		Answer:           resp.Text,
		Sources:          sources,
		ResponseTime:     time.Since(start).Seconds(),
		NumDocsRetrieved: len(docs),
	}, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
