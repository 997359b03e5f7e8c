// Package categorize derives coarse topical tags and lightweight
// entity/event hints from normalized article text via keyword-set
// membership. The output is heuristic and noisy: a feature-extraction
// convenience, deterministic for a fixed trigger-word table, never treated
// as ground truth.
package categorize

import (
	"regexp"
	"strings"
)

const (
	maxMentions = 5
	maxEvents   = 3
)

// categoryTriggers maps a category name to its trigger words. Kept as an
// ordered slice so tag output order is deterministic.
type categoryTriggers struct {
	name     string
	triggers []string
}

var defaultCategories = []categoryTriggers{
	{"musique", []string{"musique", "concert", "artiste", "chanson", "album", "festival"}},
	{"cinéma", []string{"film", "cinéma", "projection", "réalisateur", "acteur"}},
	{"théâtre", []string{"théâtre", "pièce", "comédien", "spectacle"}},
	{"arts_visuels", []string{"peinture", "exposition", "sculpture", "photographie"}},
	{"littérature", []string{"livre", "écrivain", "poésie", "auteur", "littérature"}},
	{"patrimoine", []string{"patrimoine", "tradition", "coutume", "musée"}},
	{"mode", []string{"mode", "styliste", "fashion"}},
}

// mentionStoplist holds known non-entity place words excluded from mention
// candidates.
var mentionStoplist = map[string]bool{
	"Burkina":     true,
	"Faso":        true,
	"Ouagadougou": true,
}

var (
	mentionRe = regexp.MustCompile(`\b[A-Z][a-zéèêàîôûç]+(?:\s+[A-Z][a-zéèêàîôûç]+)*\b`)
	eventRe   = regexp.MustCompile(`(?i)(?:festival|concert|exposition|rema|fespaco|semaine)[^.]*`)
)

// Result holds the heuristic enrichment for one article.
type Result struct {
	Tags     []string
	Mentions []string
	Events   []string
}

// Categorizer assigns topical tags and extracts proper-noun mention and
// event phrase candidates.
type Categorizer struct {
	categories []categoryTriggers
}

// New creates a Categorizer with the fixed cultural trigger-word table.
func New() *Categorizer {
	return &Categorizer{categories: defaultCategories}
}

// Categorize derives tags from title+content and mention/event candidates
// from the content. A category is assigned when any trigger word occurs as a
// substring of the lowercased concatenation; no stemming.
func (c *Categorizer) Categorize(title, content string) Result {
	fullText := strings.ToLower(title + " " + content)

	var tags []string
	for _, cat := range c.categories {
		for _, w := range cat.triggers {
			if strings.Contains(fullText, w) {
				tags = append(tags, cat.name)
				break
			}
		}
	}

	return Result{
		Tags:     tags,
		Mentions: extractMentions(content),
		Events:   extractEvents(fullText),
	}
}

// extractMentions finds capitalized-word runs, filters short candidates and
// stoplisted place names, deduplicates preserving first-seen order, and caps
// the result.
func extractMentions(content string) []string {
	candidates := mentionRe.FindAllString(content, -1)

	seen := make(map[string]bool)
	var mentions []string
	for _, cand := range candidates {
		if len([]rune(cand)) <= 3 || mentionStoplist[cand] || seen[cand] {
			continue
		}
		seen[cand] = true
		mentions = append(mentions, cand)
		if len(mentions) == maxMentions {
			break
		}
	}

	return mentions
}

// extractEvents matches event lead-in phrases up to the next sentence end.
func extractEvents(fullText string) []string {
	events := eventRe.FindAllString(fullText, maxEvents)
	for i := range events {
		events[i] = strings.TrimSpace(events[i])
	}
	return events
}
