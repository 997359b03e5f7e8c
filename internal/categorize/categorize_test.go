package categorize

import (
	"reflect"
	"strings"
	"testing"
)

func TestCategorize_Tags(t *testing.T) {
	c := New()

	cases := []struct {
		name    string
		title   string
		content string
		want    []string
	}{
		{
			name:    "single category from content",
			title:   "Une soirée à Ouaga",
			content: "Le concert a réuni plusieurs milliers de personnes.",
			want:    []string{"musique"},
		},
		{
			name:    "category from title only",
			title:   "Sortie du film Sira",
			content: "Une projection est prévue la semaine prochaine.",
			want:    []string{"cinéma"},
		},
		{
			name:    "multiple categories in fixed order",
			title:   "Festival des arts",
			content: "Au programme: musique, théâtre et une exposition de peinture.",
			want:    []string{"musique", "théâtre", "arts_visuels"},
		},
		{
			name:    "no match",
			title:   "Résultats sportifs",
			content: "Le match s'est terminé sur un score nul.",
			want:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Categorize(tc.title, tc.content)
			if !reflect.DeepEqual(got.Tags, tc.want) {
				t.Errorf("tags = %v, want %v", got.Tags, tc.want)
			}
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	c := New()
	title := "Festival Jazz à Ouaga"
	content := "Alif Naaba et Floby ont chanté au concert d'ouverture du festival."

	first := c.Categorize(title, content)
	for i := 0; i < 10; i++ {
		again := c.Categorize(title, content)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("categorize not deterministic: %v != %v", first, again)
		}
	}
}

func TestExtractMentions(t *testing.T) {
	content := "Alif Naaba a rencontré Floby à Ouagadougou. Le Burkina Faso était représenté. Alif Naaba a chanté."

	got := extractMentions(content)

	for _, m := range got {
		if m == "Ouagadougou" || m == "Burkina" || m == "Faso" {
			t.Errorf("stoplisted place word leaked into mentions: %v", got)
		}
	}

	count := map[string]int{}
	for _, m := range got {
		count[m]++
	}
	if count["Alif Naaba"] != 1 {
		t.Errorf("expected 'Alif Naaba' exactly once, got %v", got)
	}
	if count["Floby"] != 1 {
		t.Errorf("expected 'Floby' once, got %v", got)
	}
}

func TestExtractMentions_CapAndLength(t *testing.T) {
	content := "Aaaa Bbbb. Cccc Dddd. Eeee Ffff. Gggg Hhhh. Iiii Jjjj. Kkkk Llll. Ab Cd."

	got := extractMentions(content)
	if len(got) > 5 {
		t.Errorf("expected at most 5 mentions, got %d: %v", len(got), got)
	}
	for _, m := range got {
		if len([]rune(m)) <= 3 {
			t.Errorf("short candidate not filtered: %q", m)
		}
	}
}

func TestCategorize_Events(t *testing.T) {
	c := New()
	got := c.Categorize("Culture", "Le FESPACO 2023 ouvre ses portes samedi. Un concert de clôture est prévu. Rien d'autre.")

	if len(got.Events) == 0 {
		t.Fatal("expected event candidates")
	}
	if len(got.Events) > 3 {
		t.Errorf("expected at most 3 events, got %d", len(got.Events))
	}
	if !strings.Contains(got.Events[0], "fespaco") {
		t.Errorf("expected first event to start with the fespaco lead-in, got %q", got.Events[0])
	}
}
