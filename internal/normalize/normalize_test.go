package normalize

import (
	"math/rand"
	"strings"
	"testing"
)

func TestText_StripsMarkupAndURLs(t *testing.T) {
	in := `<p>Le festival a   réuni <b>des artistes</b>.</p> Voir https://lefaso.net/spip.php?article1 et www.example.com/page`
	got := Text(in)

	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("markup not stripped: %q", got)
	}
	if strings.Contains(got, "http") || strings.Contains(got, "www.") {
		t.Errorf("URLs not stripped: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestText_StripsBoilerplate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		gone string
	}{
		{"newsletter", "Un concert à Ouaga. Newsletter LeFaso.net", "Newsletter"},
		{"trailing source", "Un concert à Ouaga. Lefaso.net", "Lefaso.net"},
		{"read also", "Lire aussi : un autre article sur le sujet", "Lire aussi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			if strings.Contains(got, tc.gone) {
				t.Errorf("expected %q to be stripped, got %q", tc.gone, got)
			}
		})
	}
}

func TestText_StripsTrailingByline(t *testing.T) {
	in := "Le spectacle a ravi le public venu nombreux. Ahmed Ouattara"
	got := Text(in)
	if strings.Contains(got, "Ahmed Ouattara") {
		t.Errorf("byline not stripped: %q", got)
	}
	if !strings.Contains(got, "ravi le public") {
		t.Errorf("content lost: %q", got)
	}
}

func TestText_EmptyInput(t *testing.T) {
	if got := Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"simple text already clean",
		"<div>nested <span>tags</span></div> with http://u.rl and\n\nnewlines",
		"Texte au sujet du FESPACO à Ouagadougou. Jean Traoré (correspondant)",
		"Lire aussi : détails. Newsletter LeFaso.net Awa Sana",
	}

	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n first: %q\nsecond: %q", in, once, twice)
		}
	}
}

func TestText_IdempotentRandom(t *testing.T) {
	// Property check over random markup-laced strings.
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcDEF éèà <>/ .!?\n\t()ÀÉ:wwwhttp")

	for i := 0; i < 200; i++ {
		n := rng.Intn(120)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		in := b.String()

		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Fatalf("not idempotent for random input %q:\n first: %q\nsecond: %q", in, once, twice)
		}
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Publié le mardi 10 octobre 2023 à 10h30min", "2023-10-10"},
		{"le 5 janvier 2024", "2024-01-05"},
		{"1 décembre 2022", "2022-12-01"},
		{"31 août 2021", "2021-08-31"},
		{"lundi 7 Février 2023", "2023-02-07"},
		{"", ""},
		{"pas de date ici", ""},
		{"10 nonsense 2023", ""},
		{"42 octobre 2023", ""},
		{"2023-10-10", ""},
	}

	for _, tc := range cases {
		if got := Date(tc.in); got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
