// Package cache provides the layered byte cache used for fetched pages and
// computed embeddings: a fast in-process layer backed by a TTL'd disk layer.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives the cache key for a fetched page.
func PageKey(url string) string {
	return hashKey("page", url)
}

// EmbeddingKey derives the cache key for an embedding. The model name is
// part of the key so switching models never serves stale vectors.
func EmbeddingKey(model, text string) string {
	return hashKey("embed", fmt.Sprintf("%s\x00%s", model, text))
}

func hashKey(kind, payload string) string {
	hash := sha256.Sum256([]byte(payload))
	return "griot:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
