package llm

import (
	"fmt"
	"strings"

	"github.com/skonate/griot/internal/model"
)

// DefaultSystemPrompt frames the model as a French-speaking expert on
// Burkinabè culture.
const DefaultSystemPrompt = "Tu es un assistant expert sur la culture burkinabè. Réponds en français."

// maxDocChars caps how much of each document goes into the prompt.
const maxDocChars = 500

// BuildPrompt renders the question and its retrieved documents into the
// generation prompt. Documents are numbered so the model can cite them.
func BuildPrompt(question string, docs []model.RetrievalResult) string {
	var contextParts []string
	for i, doc := range docs {
		contextParts = append(contextParts, fmt.Sprintf(
			"[Document %d]\nTitre: %s\nDate: %s\nContenu: %s...\nSource: %s\n",
			i+1, doc.Title, doc.Date, truncate(doc.Content, maxDocChars), doc.URL,
		))
	}

	return fmt.Sprintf(`Tu es un assistant expert sur la culture burkinabè. Réponds à la question en te basant UNIQUEMENT sur les documents fournis ci-dessous.

DOCUMENTS DE RÉFÉRENCE:
%s

---

QUESTION: %s

INSTRUCTIONS:
1. Réponds en français de manière claire et précise
2. Utilise UNIQUEMENT les informations des documents ci-dessus
3. Si l'information n'est pas dans les documents, dis "Je n'ai pas trouvé cette information dans ma base de données"
4. Cite les sources en mentionnant les titres des articles
5. Structure ta réponse avec des paragraphes si nécessaire

RÉPONSE:`, strings.Join(contextParts, "\n---\n"), question)
}

// truncate cuts s at n runes, never mid-rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
