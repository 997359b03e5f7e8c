package cache

import (
	"testing"
	"time"
)

func TestKeys(t *testing.T) {
	if PageKey("https://a.example") == PageKey("https://b.example") {
		t.Error("distinct URLs must not share a page key")
	}
	if PageKey("https://a.example") != PageKey("https://a.example") {
		t.Error("page keys must be deterministic")
	}
	if EmbeddingKey("model-a", "texte") == EmbeddingKey("model-b", "texte") {
		t.Error("the same text under different models must not share a key")
	}
	if EmbeddingKey("m", "a\x00b") == EmbeddingKey("m\x00a", "b") {
		t.Error("model and text must not be confusable in the key")
	}
}

func TestLayeredCache_DiskHitPromotes(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	key := EmbeddingKey("m", "bonjour")
	if err := c.Set(key, []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	// Drop the memory layer; the disk layer must still serve the entry.
	c.memory.Clear()
	got, found := c.Get(key)
	if !found || string(got) != "v" {
		t.Fatalf("disk fallback failed: found=%v value=%q", found, got)
	}

	// The hit was promoted back into memory.
	if _, found := c.memory.Get(key); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := PageKey("https://lefaso.net/spip.php?article1")
	if err := c.Set(key, []byte("page"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, found := c.Get(key); found {
		t.Error("expired entry must not be served")
	}
}
