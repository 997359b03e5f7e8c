package model

import "time"

// Chunk is the unit of retrieval: a contiguous word window of one article's
// normalized content, with the article metadata denormalized onto it.
type Chunk struct {
	ID          string      `json:"id"` // "{article_id}_chunk_{index}"
	ArticleID   string      `json:"article_id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Meta        ArticleMeta `json:"metadata"`
	ChunkIndex  int         `json:"chunk_index"`
	TotalChunks int         `json:"total_chunks"`
}

// RunStats aggregates per-run preprocessing counters. Per-record failures
// are counted here, never fatal to the batch.
type RunStats struct {
	TotalArticles       int     `json:"total_articles"`
	ValidArticles       int     `json:"valid_articles"`
	DuplicatesRemoved   int     `json:"duplicates_removed"`
	EmptyContentRemoved int     `json:"empty_content_removed"`
	NoTopicRemoved      int     `json:"no_topic_removed"`
	AvgContentWords     float64 `json:"avg_content_length"`
	TotalChunks         int     `json:"total_chunks"`
}

// CorpusMeta describes one preprocessing run.
type CorpusMeta struct {
	GeneratedAt   time.Time `json:"generated_at"`
	TotalArticles int       `json:"total_articles"`
	TotalChunks   int       `json:"total_chunks"`
	Source        string    `json:"source"`
	Stats         RunStats  `json:"preprocessing_stats"`
}

// ProcessedCorpus is the processed corpus file layout: run metadata plus the
// flat list of retrievable chunks.
type ProcessedCorpus struct {
	Meta   CorpusMeta `json:"metadata"`
	Corpus []Chunk    `json:"corpus"`
}

// IndexedVector pairs a chunk with its embedding vector. Chunk metadata is
// copied so retrieval needs no join against the corpus file.
type IndexedVector struct {
	ChunkID     string    `json:"chunk_id"`
	ArticleID   string    `json:"article_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	Embedding   []float32 `json:"embedding"`
}
