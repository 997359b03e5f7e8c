// Package normalize cleans raw scraped text and parses loosely-formatted
// publication dates into a canonical form.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	bylineRe     = regexp.MustCompile(`\b[A-Z][a-zéèêàîôûç]+\s+[A-Z][a-zéèêàîôûç]+(\s+\([^)]+\))?\s*$`)

	// Source boilerplate stripped verbatim.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`Newsletter LeFaso\.net`),
		regexp.MustCompile(`Lefaso\.net\s*$`),
		regexp.MustCompile(`Lire aussi\s*:`),
	}
)

// Text cleans a raw string: Unicode NFKC normalization, residual markup
// stripping, bare-URL stripping, source boilerplate and trailing byline
// removal, whitespace collapsing. Idempotent; empty input yields "".
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)
	s = htmlTagRe.ReplaceAllString(s, "")
	s = urlRe.ReplaceAllString(s, "")

	// Boilerplate and trailing bylines are stripped to a joint fixpoint:
	// removing a byline can expose trailing boilerplate (and vice versa),
	// and a second pass over already-clean text must change nothing.
	for {
		prev := s
		for _, re := range boilerplateRes {
			s = re.ReplaceAllString(s, "")
		}
		s = strings.TrimSpace(bylineRe.ReplaceAllString(s, ""))
		if s == prev {
			break
		}
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var dateRe = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)

// French month names as they appear in source date strings like
// "Publié le mardi 10 octobre 2023 à 10h30min".
var frenchMonths = map[string]string{
	"janvier":   "01",
	"février":   "02",
	"mars":      "03",
	"avril":     "04",
	"mai":       "05",
	"juin":      "06",
	"juillet":   "07",
	"août":      "08",
	"septembre": "09",
	"octobre":   "10",
	"novembre":  "11",
	"décembre":  "12",
}

// Date extracts a "<day> <month-name> <year>" pattern and returns it as
// YYYY-MM-DD with a zero-padded day. Unrecognized input returns "" rather
// than an error; callers treat an empty date as unknown.
func Date(s string) string {
	if s == "" {
		return ""
	}

	m := dateRe.FindStringSubmatch(norm.NFKC.String(s))
	if m == nil {
		return ""
	}

	month, ok := frenchMonths[strings.ToLower(m[2])]
	if !ok {
		return ""
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return ""
	}

	return fmt.Sprintf("%s-%s-%02d", m[3], month, day)
}
