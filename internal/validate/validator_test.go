package validate

import (
	"strings"
	"testing"
)

func TestIsValid_Accepts(t *testing.T) {
	v := New(100)

	content := strings.Repeat("Le festival de musique a rassemblé des artistes venus de toute la région. ", 3)
	if !v.IsValid("https://lefaso.net/spip.php?article1", "Festival à Ouaga", content) {
		t.Error("expected valid record to be accepted")
	}

	if c := v.Counters(); c != (Counters{}) {
		t.Errorf("expected no rejections, got %+v", c)
	}
}

func TestIsValid_Rejections(t *testing.T) {
	longCultural := strings.Repeat("concert et musique pour tous dans la capitale du pays entier. ", 3)
	longOffTopic := strings.Repeat("le cours du coton a encore progressé sur les marchés mondiaux. ", 3)

	cases := []struct {
		name    string
		url     string
		title   string
		content string
		want    Counters
	}{
		{"missing url", "", "Titre", longCultural, Counters{MissingFields: 1}},
		{"missing title", "https://example.com/a", "", longCultural, Counters{MissingFields: 1}},
		{"short content", "https://example.com/a", "Titre", "trop court", Counters{EmptyContent: 1}},
		{"no topical keyword", "https://example.com/a", "Marchés", longOffTopic, Counters{NoTopic: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(100)
			if v.IsValid(tc.url, tc.title, tc.content) {
				t.Fatal("expected record to be rejected")
			}
			if c := v.Counters(); c != tc.want {
				t.Errorf("counters = %+v, want %+v", c, tc.want)
			}
		})
	}
}

func TestIsValid_KeywordInTitleOnly(t *testing.T) {
	v := New(100)
	content := strings.Repeat("la cérémonie d'ouverture s'est tenue hier soir devant un public nombreux. ", 3)

	if !v.IsValid("https://example.com/a", "Une exposition inédite", content) {
		t.Error("expected keyword in title to satisfy topical validation")
	}
}

func TestReset(t *testing.T) {
	v := New(100)
	v.IsValid("", "", "")
	if v.Counters() == (Counters{}) {
		t.Fatal("expected a rejection to be counted")
	}

	v.Reset()
	if c := v.Counters(); c != (Counters{}) {
		t.Errorf("expected counters reset, got %+v", c)
	}
}
