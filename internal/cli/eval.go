package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/skonate/griot/internal/eval"
	"github.com/skonate/griot/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	evalQuestions string
	evalJSON      string
	evalMD        string
	evalTimeout   time.Duration
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate answer quality against a test question set",
	Long: `Eval runs every test question through the full pipeline and scores
retrieval precision (keyword coverage of retrieved documents) and
answer relevance (a rubric out of 5). Results are written as JSON
and optionally as a markdown report.

Example:
  griot eval --questions evaluation/test_questions.json
  griot eval --questions questions.json --json results.json --md report.md`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalQuestions, "questions", "evaluation/test_questions.json", "test questions JSON path")
	evalCmd.Flags().StringVar(&evalJSON, "json", "evaluation/results.json", "results JSON output path")
	evalCmd.Flags().StringVar(&evalMD, "md", "", "markdown report output path (optional)")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 30*time.Minute, "overall evaluation timeout")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cases, err := eval.LoadTestCases(evalQuestions)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	if err := p.AttachLLM(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	llmName := cfg.LLM.Provider + "/" + cfg.LLM.Model
	evaluator := eval.NewEvaluator(p, cfg.Retrieval.TopK, llmName, verbose)

	results, err := evaluator.Run(ctx, cases)
	if err != nil {
		return err
	}

	if err := eval.SaveJSON(results, evalJSON); err != nil {
		return err
	}
	if evalMD != "" {
		if err := eval.WriteReport(results, evalMD); err != nil {
			return err
		}
	}

	agg := results.Aggregate
	fmt.Printf("Evaluated %d questions\n", results.Metadata.TotalQuestions)
	fmt.Printf("  Précision retrieval: %.1f%%\n", agg.AvgRetrievalPrecisionPercent)
	fmt.Printf("  Pertinence réponse:  %.2f/5\n", agg.AvgAnswerRelevance)
	fmt.Printf("  Temps de réponse:    %.2fs\n", agg.AvgResponseTime)
	fmt.Printf("Results: %s\n", evalJSON)
	if evalMD != "" {
		fmt.Printf("Report:  %s\n", evalMD)
	}
	return nil
}
