package model

import "time"

// Config is the complete griot configuration. Values are resolved in order:
// CLI flags, GRIOT_* environment variables, ~/.griot/config.yaml, defaults.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Scrape     ScrapeConfig     `yaml:"scrape"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Store      StoreConfig      `yaml:"store"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	LLM        LLMConfig        `yaml:"llm"`
	Cache      CacheConfig      `yaml:"cache"`
	Output     OutputConfig     `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior for scraping.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// ScrapeConfig controls the enrichment scraper.
type ScrapeConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	MaxRetries        int     `yaml:"max_retries"`
	MinContentChars   int     `yaml:"min_content_chars"`
}

// PreprocessConfig controls corpus cleaning and chunking.
type PreprocessConfig struct {
	MinContentChars int `yaml:"min_content_chars"`
	ChunkSize       int `yaml:"chunk_size"`    // words per chunk
	ChunkOverlap    int `yaml:"chunk_overlap"` // words shared between consecutive chunks
	MinChunkWords   int `yaml:"min_chunk_words"`
}

// EmbeddingConfig controls the external embedding model calls.
type EmbeddingConfig struct {
	Provider          string        `yaml:"provider"` // openai, ollama
	Model             string        `yaml:"model"`
	BaseURL           string        `yaml:"base_url,omitempty"`
	APIKey            string        `yaml:"-"`         // from env only, never persisted
	Dimension         int           `yaml:"dimension"` // 0 = fix on first call
	BatchSize         int           `yaml:"batch_size"`
	Workers           int           `yaml:"workers"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryBackoff      time.Duration `yaml:"retry_backoff"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// StoreConfig controls the persisted vector index.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// RetrievalConfig controls query-time retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// LLMConfig controls the generation model.
type LLMConfig struct {
	Provider     string        `yaml:"provider"` // openai, huggingface, ollama
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"-"` // from env only
	BaseURL      string        `yaml:"base_url,omitempty"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxTokens    int           `yaml:"max_tokens"`
	Temperature  float32       `yaml:"temperature"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// CacheConfig controls the layered embedding/page cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig controls reporting.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Griot/0.1 (+https://github.com/skonate/griot)",
			MaxBodyBytes: 2_000_000,
		},
		Scrape: ScrapeConfig{
			Workers:           4,
			RequestsPerSecond: 0.5,
			Burst:             1,
			MaxRetries:        3,
			MinContentChars:   100,
		},
		Preprocess: PreprocessConfig{
			MinContentChars: 100,
			ChunkSize:       600,
			ChunkOverlap:    100,
			MinChunkWords:   50,
		},
		Embedding: EmbeddingConfig{
			Provider:          "openai",
			Model:             "text-embedding-3-small",
			BatchSize:         32,
			Workers:           4,
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			RetryBackoff:      500 * time.Millisecond,
			RequestsPerSecond: 5,
		},
		Store: StoreConfig{
			Dir: "data/vectors",
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
		LLM: LLMConfig{
			Provider:     "huggingface",
			Model:        "mistralai/Mistral-7B-Instruct-v0.2",
			Timeout:      60 * time.Second,
			MaxTokens:    500,
			Temperature:  0.7,
			MaxRetries:   3,
			RetryBackoff: 2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
	}
}
