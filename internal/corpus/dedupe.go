package corpus

import (
	"strings"

	"github.com/skonate/griot/internal/model"
)

// Deduplicator collapses articles sharing a URL or a normalized title.
// First occurrence wins; later collisions are dropped and counted.
type Deduplicator struct {
	dropped int
}

// NewDeduplicator creates a Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Dedupe returns the unique articles in input order. An article collides
// when its URL was already seen OR its case-folded, trimmed title was
// already seen; both memberships are checked explicitly and combined, so a
// duplicate on either key alone is enough to drop the record.
func (d *Deduplicator) Dedupe(articles []model.Article) []model.Article {
	seenURLs := make(map[string]bool, len(articles))
	seenTitles := make(map[string]bool, len(articles))

	unique := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		url := strings.TrimSpace(a.URL)
		title := strings.TrimSpace(strings.ToLower(a.Title))

		urlNew := !seenURLs[url]
		titleNew := !seenTitles[title]
		if urlNew && titleNew {
			seenURLs[url] = true
			seenTitles[title] = true
			unique = append(unique, a)
		} else {
			d.dropped++
		}
	}

	return unique
}

// Dropped returns how many articles were discarded as duplicates.
func (d *Deduplicator) Dropped() int {
	return d.dropped
}
