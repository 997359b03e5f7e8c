// Package corpus turns raw scraped records into the deduplicated,
// normalized, overlap-chunked processed corpus that indexing consumes.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/skonate/griot/internal/categorize"
	"github.com/skonate/griot/internal/model"
	"github.com/skonate/griot/internal/normalize"
	"github.com/skonate/griot/internal/validate"
)

const defaultCategory = "Culture"

// Preprocessor runs the full cleaning pipeline:
// raw records -> normalize -> categorize -> validate -> dedupe -> chunk.
type Preprocessor struct {
	validator   *validate.Validator
	categorizer *categorize.Categorizer
	chunker     *Chunker
	source      string
}

// NewPreprocessor builds a Preprocessor from configuration.
func NewPreprocessor(cfg model.PreprocessConfig, source string) (*Preprocessor, error) {
	chunker, err := NewChunker(cfg.ChunkSize, cfg.ChunkOverlap, cfg.MinChunkWords)
	if err != nil {
		return nil, fmt.Errorf("chunker: %w", err)
	}
	return &Preprocessor{
		validator:   validate.New(cfg.MinContentChars),
		categorizer: categorize.New(),
		chunker:     chunker,
		source:      source,
	}, nil
}

// Process consumes raw records and produces the processed corpus plus run
// statistics. Per-record failures are counted and skipped; they never abort
// the batch.
func (p *Preprocessor) Process(raw []model.RawRecord) *model.ProcessedCorpus {
	p.validator.Reset()

	stats := model.RunStats{TotalArticles: len(raw)}

	var articles []model.Article
	for _, rec := range raw {
		title := normalize.Text(rec.Title)
		content := normalize.Text(rec.Content)

		if !p.validator.IsValid(rec.URL, title, content) {
			continue
		}

		category := rec.Category
		if category == "" {
			category = defaultCategory
		}

		enrich := p.categorizer.Categorize(title, content)
		articles = append(articles, model.Article{
			ID:       ArticleID(rec.URL),
			URL:      rec.URL,
			Title:    title,
			Content:  content,
			Date:     normalize.Date(rec.Date),
			Category: category,
			Meta: model.ArticleMeta{
				Categories:       enrich.Tags,
				ArtistsMentioned: enrich.Mentions,
				Events:           enrich.Events,
				WordCount:        len(strings.Fields(content)),
			},
		})
	}
	stats.ValidArticles = len(articles)

	deduper := NewDeduplicator()
	unique := deduper.Dedupe(articles)
	stats.DuplicatesRemoved = deduper.Dropped()

	counters := p.validator.Counters()
	stats.EmptyContentRemoved = counters.EmptyContent
	stats.NoTopicRemoved = counters.NoTopic

	var chunks []model.Chunk
	for _, a := range unique {
		windows := p.chunker.Split(a.Content)
		for i, w := range windows {
			chunks = append(chunks, model.Chunk{
				ID:          fmt.Sprintf("%s_chunk_%d", a.ID, i),
				ArticleID:   a.ID,
				URL:         a.URL,
				Title:       a.Title,
				Content:     w,
				Date:        a.Date,
				Category:    a.Category,
				Meta:        a.Meta,
				ChunkIndex:  i,
				TotalChunks: len(windows),
			})
		}
	}
	stats.TotalChunks = len(chunks)

	if len(unique) > 0 {
		total := 0
		for _, a := range unique {
			total += a.Meta.WordCount
		}
		stats.AvgContentWords = float64(total) / float64(len(unique))
	}

	return &model.ProcessedCorpus{
		Meta: model.CorpusMeta{
			GeneratedAt:   time.Now().UTC(),
			TotalArticles: len(unique),
			TotalChunks:   len(chunks),
			Source:        p.source,
			Stats:         stats,
		},
		Corpus: chunks,
	}
}

// ArticleID derives a stable identifier from the article URL. LeFaso-style
// URLs end in "article<N>", which stays the ID; anything else gets a short
// URL hash.
func ArticleID(url string) string {
	if i := strings.LastIndex(url, "article"); i >= 0 {
		suffix := url[i+len("article"):]
		if suffix != "" && isDigits(suffix) {
			return suffix
		}
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:6])
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
