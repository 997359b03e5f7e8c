package model

// RetrievalResult is one ranked nearest-neighbor hit. SimilarityScore is
// 1 − Distance under the store's cosine metric (vectors L2-normalized), so
// higher means more relevant.
type RetrievalResult struct {
	ChunkID         string  `json:"chunk_id"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Date            string  `json:"date"`
	Content         string  `json:"content"`
	Distance        float64 `json:"distance"`
	SimilarityScore float64 `json:"similarity_score"`
}

// Source is a citation attached to a generated answer.
type Source struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Date           string  `json:"date"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Answer is the complete question-answering result returned to callers.
type Answer struct {
	Question         string   `json:"question"`
	Answer           string   `json:"answer"`
	Sources          []Source `json:"sources"`
	ResponseTime     float64  `json:"response_time"` // seconds
	NumDocsRetrieved int      `json:"num_docs_retrieved"`
}
