package model

// RawRecord is an untrusted scraped record as it appears in the raw corpus
// file. Any field may be absent, empty, or malformed.
type RawRecord struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// ArticleMeta holds the heuristic enrichment extracted from an article.
// It is best-effort tagging, not ground truth.
type ArticleMeta struct {
	Categories       []string `json:"categories"`
	ArtistsMentioned []string `json:"artists_mentioned"`
	Events           []string `json:"events"`
	WordCount        int      `json:"word_count"`
}

// Article is a validated, normalized record. Every field is guaranteed
// present (date may be empty meaning "unknown"); downstream code never
// re-checks optionality.
type Article struct {
	ID       string      `json:"id"`
	URL      string      `json:"url"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Date     string      `json:"date"` // YYYY-MM-DD or ""
	Category string      `json:"category"`
	Meta     ArticleMeta `json:"metadata"`
}
