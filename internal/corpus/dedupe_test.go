package corpus

import (
	"testing"

	"github.com/skonate/griot/internal/model"
)

func art(url, title string) model.Article {
	return model.Article{ID: ArticleID(url), URL: url, Title: title}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	d := NewDeduplicator()

	unique := d.Dedupe([]model.Article{
		art("https://a.example/1", "Titre A"),
		art("https://a.example/1", "Titre A"),
	})
	if len(unique) != 1 {
		t.Fatalf("got %d articles, want 1", len(unique))
	}
	if d.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", d.Dropped())
	}
}

func TestDedupe_URLCollisionAlone(t *testing.T) {
	d := NewDeduplicator()

	// Same URL with a different title is still a duplicate.
	unique := d.Dedupe([]model.Article{
		art("https://a.example/1", "Titre A"),
		art("https://a.example/1", "Titre B"),
	})
	if len(unique) != 1 {
		t.Fatalf("got %d articles, want 1", len(unique))
	}
	if unique[0].Title != "Titre A" {
		t.Errorf("kept %q, want first occurrence", unique[0].Title)
	}
}

func TestDedupe_TitleCollisionAlone(t *testing.T) {
	d := NewDeduplicator()

	// Same title under a different URL is still a duplicate.
	unique := d.Dedupe([]model.Article{
		art("https://a.example/1", "Titre A"),
		art("https://a.example/2", "Titre A"),
	})
	if len(unique) != 1 {
		t.Fatalf("got %d articles, want 1", len(unique))
	}
	if unique[0].URL != "https://a.example/1" {
		t.Errorf("kept %q, want first occurrence", unique[0].URL)
	}
}

func TestDedupe_TitlesCaseFolded(t *testing.T) {
	d := NewDeduplicator()

	unique := d.Dedupe([]model.Article{
		art("https://a.example/1", "Titre A"),
		art("https://a.example/2", "  TITRE a "),
	})
	if len(unique) != 1 {
		t.Fatalf("case and whitespace variants must collide, got %d articles", len(unique))
	}
}

func TestDedupe_DroppedRecordDoesNotClaimKeys(t *testing.T) {
	d := NewDeduplicator()

	// The second record is dropped on its title. Its URL must not block the
	// third record.
	unique := d.Dedupe([]model.Article{
		art("https://a.example/1", "Titre A"),
		art("https://a.example/2", "Titre A"),
		art("https://a.example/2", "Titre C"),
	})
	if len(unique) != 2 {
		t.Fatalf("got %d articles, want 2", len(unique))
	}
	if d.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", d.Dropped())
	}
}
