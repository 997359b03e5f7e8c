// Package store holds the flat vector index: normalized embeddings searched
// exactly by cosine distance, persisted as atomically swapped generation
// files.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/skonate/griot/internal/model"
)

var (
	// ErrNotIndexed is returned by Query before any corpus has been indexed.
	ErrNotIndexed = errors.New("store: no corpus indexed")
	// ErrDimension is returned when a vector's dimension does not match the index.
	ErrDimension = errors.New("store: embedding dimension mismatch")
	// ErrInvalidTopK is returned for a non-positive top_k.
	ErrInvalidTopK = errors.New("store: top_k must be positive")
)

const currentFile = "CURRENT"

// Hit is one nearest-neighbor match.
type Hit struct {
	Vector   model.IndexedVector
	Distance float64
}

// generation is one immutable snapshot of the index. Queries read whichever
// snapshot the swap pointer held when they started.
type generation struct {
	Dimension int                   `json:"dimension"`
	CreatedAt time.Time             `json:"created_at"`
	Vectors   []model.IndexedVector `json:"vectors"`
}

// Store is a flat exact-search vector index over article chunks. A rebuild
// writes a complete new generation and swaps it in; concurrent queries see
// either the old corpus or the new one, never a mix.
type Store struct {
	mu  sync.RWMutex
	dir string
	gen *generation
}

// Open creates a Store rooted at dir and loads the current generation if one
// was persisted. A missing or empty directory yields an empty store.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir}

	name, err := os.ReadFile(filepath.Join(dir, currentFile))
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read generation pointer: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, string(name)))
	if err != nil {
		return nil, fmt.Errorf("read generation %s: %w", name, err)
	}

	var gen generation
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, fmt.Errorf("decode generation %s: %w", name, err)
	}

	s.gen = &gen
	return s, nil
}

// Rebuild replaces the whole index with the given chunks and their
// embeddings. The new generation is fully written and fsync-renamed into
// place before the in-memory swap; a crash mid-rebuild leaves the previous
// generation intact.
func (s *Store) Rebuild(ctx context.Context, chunks []model.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("store: %d chunks but %d embeddings", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return errors.New("store: refusing to rebuild with an empty corpus")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dim := len(embeddings[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-length embedding", ErrDimension)
	}

	vectors := make([]model.IndexedVector, len(chunks))
	for i, ch := range chunks {
		if len(embeddings[i]) != dim {
			return fmt.Errorf("%w: chunk %s has dimension %d, index has %d",
				ErrDimension, ch.ID, len(embeddings[i]), dim)
		}
		vectors[i] = model.IndexedVector{
			ChunkID:     ch.ID,
			ArticleID:   ch.ArticleID,
			URL:         ch.URL,
			Title:       ch.Title,
			Content:     ch.Content,
			Date:        ch.Date,
			Category:    ch.Category,
			ChunkIndex:  ch.ChunkIndex,
			TotalChunks: ch.TotalChunks,
			Embedding:   normalize(embeddings[i]),
		}
	}

	gen := &generation{
		Dimension: dim,
		CreatedAt: time.Now().UTC(),
		Vectors:   vectors,
	}

	name, err := s.persist(gen)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.gen = gen
	s.mu.Unlock()

	s.pruneGenerations(name)
	return nil
}

// persist writes the generation file and repoints CURRENT at it, both via
// temp-write-then-rename. Returns the generation file name.
func (s *Store) persist(gen *generation) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.Marshal(gen)
	if err != nil {
		return "", fmt.Errorf("encode generation: %w", err)
	}

	name := fmt.Sprintf("gen-%d.json", time.Now().UnixNano())
	if err := writeAtomic(filepath.Join(s.dir, name), data); err != nil {
		return "", fmt.Errorf("write generation: %w", err)
	}
	if err := writeAtomic(filepath.Join(s.dir, currentFile), []byte(name)); err != nil {
		return "", fmt.Errorf("swap generation pointer: %w", err)
	}
	return name, nil
}

// pruneGenerations removes generation files other than the one just
// installed. Failures are ignored; stale files only cost disk.
func (s *Store) pruneGenerations(keep string) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "gen-*.json"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if filepath.Base(m) != keep {
			os.Remove(m)
		}
	}
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Query returns the k nearest chunks to vec by cosine distance, closest
// first. Ties keep insertion order. k larger than the corpus returns the
// whole corpus ranked.
func (s *Store) Query(vec []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, ErrInvalidTopK
	}

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	if gen == nil || len(gen.Vectors) == 0 {
		return nil, ErrNotIndexed
	}
	if len(vec) != gen.Dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			ErrDimension, len(vec), gen.Dimension)
	}

	q := normalize(vec)

	hits := make([]Hit, len(gen.Vectors))
	for i, v := range gen.Vectors {
		hits[i] = Hit{Vector: v, Distance: cosineDistance(q, v.Embedding)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen == nil {
		return 0
	}
	return len(s.gen.Vectors)
}

// Dimension returns the embedding dimension of the current generation, or 0
// when nothing is indexed.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen == nil {
		return 0
	}
	return s.gen.Dimension
}

// IndexedAt returns when the current generation was built, or the zero time
// when nothing is indexed.
func (s *Store) IndexedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen == nil {
		return time.Time{}
	}
	return s.gen.CreatedAt
}

// normalize returns v scaled to unit length. The zero vector comes back
// unchanged; its distance to everything is then 1.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	if n == 0 {
		return append([]float32(nil), v...)
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

// cosineDistance is 1 minus the dot product of two unit vectors, clamped so
// float noise never produces a negative distance.
func cosineDistance(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	d := 1 - dot
	if d < 0 {
		return 0
	}
	return d
}
