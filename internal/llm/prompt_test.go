package llm

import (
	"strings"
	"testing"

	"github.com/skonate/griot/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	docs := []model.RetrievalResult{
		{Title: "Le FESPACO ouvre ses portes", Date: "2023-10-10", Content: "Le festival panafricain du cinéma.", URL: "https://lefaso.net/spip.php?article1"},
		{Title: "Concert à Ouaga", Date: "2023-10-11", Content: "Une soirée musicale.", URL: "https://lefaso.net/spip.php?article2"},
	}

	prompt := BuildPrompt("Quand a lieu le FESPACO ?", docs)

	if !strings.Contains(prompt, "[Document 1]") || !strings.Contains(prompt, "[Document 2]") {
		t.Error("documents must be numbered")
	}
	if !strings.Contains(prompt, "Titre: Le FESPACO ouvre ses portes") {
		t.Error("document titles must appear")
	}
	if !strings.Contains(prompt, "Source: https://lefaso.net/spip.php?article1") {
		t.Error("document sources must appear")
	}
	if !strings.Contains(prompt, "QUESTION: Quand a lieu le FESPACO ?") {
		t.Error("the question must appear")
	}
	if !strings.Contains(prompt, "Je n'ai pas trouvé cette information") {
		t.Error("the fallback instruction must appear")
	}
	if strings.Index(prompt, "[Document 2]") < strings.Index(prompt, "[Document 1]") {
		t.Error("documents must keep retrieval order")
	}
}

func TestBuildPrompt_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("é", 2000)
	prompt := BuildPrompt("question", []model.RetrievalResult{
		{Title: "T", Content: long, URL: "https://u"},
	})

	if strings.Contains(prompt, strings.Repeat("é", 501)) {
		t.Error("content must be cut at 500 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("é", 500)+"...") {
		t.Error("truncated content must keep its first 500 characters intact")
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	if got := truncate("héhé", 3); got != "héh" {
		t.Errorf("truncate = %q, want %q", got, "héh")
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("short strings must pass through, got %q", got)
	}
}
