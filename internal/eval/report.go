package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SaveJSON writes the full results to path as indented JSON.
func SaveJSON(results *Results, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// WriteReport renders the results as a French markdown report.
func WriteReport(results *Results, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Rapport d'Évaluation\n\n")
	fmt.Fprintf(&b, "**Date:** %s  \n", results.Metadata.EvaluationDate)
	fmt.Fprintf(&b, "**LLM utilisé:** %s  \n", results.Metadata.LLMUsed)
	fmt.Fprintf(&b, "**Nombre de questions test:** %d\n\n", results.Metadata.TotalQuestions)
	b.WriteString("---\n\n## Métriques Globales\n\n")
	b.WriteString("| Métrique | Valeur |\n|----------|--------|\n")
	fmt.Fprintf(&b, "| Précision Retrieval | %.1f%% |\n", results.Aggregate.AvgRetrievalPrecisionPercent)
	fmt.Fprintf(&b, "| Pertinence Réponse | %.2f/5 |\n", results.Aggregate.AvgAnswerRelevance)
	fmt.Fprintf(&b, "| Temps de Réponse | %.2fs |\n\n", results.Aggregate.AvgResponseTime)

	b.WriteString("## Distribution des Scores de Pertinence\n\n")
	for _, category := range []string{"excellent (4-5)", "bon (3-4)", "moyen (2-3)", "faible (<2)"} {
		count := results.Aggregate.ScoreDistribution[category]
		percent := float64(count) / float64(results.Metadata.TotalQuestions) * 100
		fmt.Fprintf(&b, "- **%s**: %d questions (%.1f%%)\n", category, count, percent)
	}

	b.WriteString("\n---\n\n## Résultats Détaillés\n\n")
	for i, r := range results.Detailed {
		fmt.Fprintf(&b, "### Question %d\n\n", i+1)
		fmt.Fprintf(&b, "**Question:** %s\n\n", r.Question)
		fmt.Fprintf(&b, "**Réponse générée:**  \n%s\n\n", r.Answer)
		b.WriteString("**Métriques:**\n")
		fmt.Fprintf(&b, "- Précision Retrieval: %.1f%%\n", r.RetrievalPrecision*100)
		fmt.Fprintf(&b, "- Pertinence: %.1f/5\n", r.AnswerRelevance)
		fmt.Fprintf(&b, "- Temps: %.2fs\n", r.ResponseTime)
		fmt.Fprintf(&b, "- Sources: %d\n\n---\n\n", r.NumSources)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
