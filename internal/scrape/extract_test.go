package scrape

import (
	"strings"
	"testing"
)

func TestExtract_ArticleElement(t *testing.T) {
	page := `<html><head><title>LeFaso.net</title></head><body>
		<header><p>menu menu</p></header>
		<h1>Festival des masques à Dédougou</h1>
		<article>
			<p>Le festival a ouvert ses portes.</p>
			<script>var x = 1;</script>
			<h2>Programme</h2>
			<li>Danse des masques</li>
			<footer><p>copyright</p></footer>
		</article>
		<p>hors article</p>
	</body></html>`

	title, content := Extract(page)
	if title != "Festival des masques à Dédougou" {
		t.Errorf("title = %q", title)
	}
	for _, want := range []string{"ouvert ses portes", "Programme", "Danse des masques"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q: %q", want, content)
		}
	}
	for _, reject := range []string{"var x", "copyright", "menu menu", "hors article"} {
		if strings.Contains(content, reject) {
			t.Errorf("content must not contain %q: %q", reject, content)
		}
	}
}

func TestExtract_FallbackToParagraphs(t *testing.T) {
	page := `<html><head><title>Page culturelle</title></head><body>
		<p>Premier paragraphe.</p>
		<p>Deuxième paragraphe.</p>
	</body></html>`

	title, content := Extract(page)
	if title != "Page culturelle" {
		t.Errorf("title = %q, want document title when no h1", title)
	}
	if !strings.Contains(content, "Premier paragraphe.") || !strings.Contains(content, "Deuxième paragraphe.") {
		t.Errorf("content = %q", content)
	}
}

func TestExtract_ParagraphCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		b.WriteString("<p>para</p>")
	}
	b.WriteString("</body></html>")

	_, content := Extract(b.String())
	if got := strings.Count(content, "para"); got != 20 {
		t.Errorf("fallback took %d paragraphs, want 20", got)
	}
}

func TestExtract_Untitled(t *testing.T) {
	title, _ := Extract("<html><body><p>texte</p></body></html>")
	if title != untitledArticle {
		t.Errorf("title = %q, want %q", title, untitledArticle)
	}
}

func TestIsPDFURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://example.com/rapport.pdf", true},
		{"https://example.com/rapport.PDF", true},
		{"https://example.com/pdf/doc", true},
		{"https://example.com/article123", false},
		{"https://example.com/pdfviewer", false},
	}
	for _, tc := range cases {
		if got := IsPDFURL(tc.url); got != tc.want {
			t.Errorf("IsPDFURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
