package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/skonate/griot/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	askTopK     int
	askJSON     bool
	askNoLLM    bool
	askTimeout  time.Duration
	llmProvider string
	llmModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the indexed corpus",
	Long: `Ask embeds the question, retrieves the closest chunks from the
vector index, and asks the generation model for a French answer
grounded in those chunks. Sources are listed with every answer.

With --retrieve-only the generation step is skipped and only the
retrieved documents are printed.

Example:
  griot ask "Quels sont les principaux festivals culturels au Burkina Faso?"
  griot ask "Que sont les REMA?" --top-k 3 --json
  griot ask "Qui est Alif Naaba?" --llm-provider ollama --llm-model mistral`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of documents to retrieve (0 = config default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result as JSON")
	askCmd.Flags().BoolVar(&askNoLLM, "retrieve-only", false, "skip generation and print retrieved documents")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout")
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "generation provider (openai, huggingface, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("question vide")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if askNoLLM {
		return printRetrieved(ctx, p, question)
	}

	if err := p.AttachLLM(); err != nil {
		return err
	}

	answer, err := p.Ask(ctx, question, askTopK)
	if err != nil {
		return err
	}

	if askJSON {
		return json.NewEncoder(os.Stdout).Encode(answer)
	}

	fmt.Printf("\n%s\n\n", answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Println("Sources:")
		for i, src := range answer.Sources {
			fmt.Printf("  %d. %s (%s) [%.2f]\n", i+1, src.Title, src.URL, src.RelevanceScore)
		}
	}
	fmt.Printf("\n%d documents, %.2fs\n", answer.NumDocsRetrieved, answer.ResponseTime)
	return nil
}

func printRetrieved(ctx context.Context, p *pipeline.Pipeline, question string) error {
	docs, err := p.Retrieve(ctx, question, askTopK)
	if err != nil {
		return err
	}

	if askJSON {
		return json.NewEncoder(os.Stdout).Encode(docs)
	}

	for i, doc := range docs {
		fmt.Printf("%d. %s [%.3f]\n   %s\n   %s\n\n",
			i+1, doc.Title, doc.SimilarityScore, doc.URL, snippet(doc.Content, 200))
	}
	return nil
}

func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
