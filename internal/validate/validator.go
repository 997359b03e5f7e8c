// Package validate decides which raw records are allowed into the corpus
// and counts the rejection reasons for run reporting.
package validate

import "strings"

// Default topical keywords: a record must contain at least one of these in
// its title or content to be accepted.
var defaultKeywords = []string{
	"culture", "musique", "art", "festival", "cinéma", "théâtre",
	"artiste", "concert", "exposition", "film", "peinture",
}

// Counters aggregates rejection reasons for one preprocessing run. They are
// process-local state, reset per run, never persisted.
type Counters struct {
	MissingFields int
	EmptyContent  int
	NoTopic       int
}

// Validator rejects records lacking required fields, minimum content length,
// or any topical relevance signal.
type Validator struct {
	keywords        []string
	minContentChars int
	counters        Counters
}

// New creates a Validator with the given minimum content length. A
// non-positive minimum falls back to 100 characters.
func New(minContentChars int) *Validator {
	if minContentChars <= 0 {
		minContentChars = 100
	}
	return &Validator{
		keywords:        defaultKeywords,
		minContentChars: minContentChars,
	}
}

// IsValid reports whether the record may enter the corpus, incrementing the
// matching rejection counter when it may not.
func (v *Validator) IsValid(url, title, content string) bool {
	if url == "" || title == "" {
		v.counters.MissingFields++
		return false
	}

	if len(content) < v.minContentChars {
		v.counters.EmptyContent++
		return false
	}

	text := strings.ToLower(title + " " + content)
	for _, kw := range v.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	v.counters.NoTopic++
	return false
}

// Counters returns a snapshot of the rejection counters.
func (v *Validator) Counters() Counters {
	return v.counters
}

// Reset clears the rejection counters for a new run.
func (v *Validator) Reset() {
	v.counters = Counters{}
}
