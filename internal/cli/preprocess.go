package cli

import (
	"fmt"

	"github.com/skonate/griot/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	preprocessInput  string
	preprocessOutput string
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Clean, validate, deduplicate, and chunk the raw corpus",
	Long: `Preprocess turns raw scraped records into an indexable corpus:
- Normalize whitespace, HTML entities, and URLs
- Drop records with missing or too-short content
- Deduplicate by URL and by folded title
- Assign categories, dates, and stable article IDs
- Split long articles into overlapping word chunks

Example:
  griot preprocess
  griot preprocess --input data/raw/articles.json --output data/processed/corpus.json`,
	RunE: runPreprocess,
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().StringVarP(&preprocessInput, "input", "i", "data/raw/articles.json", "raw corpus path")
	preprocessCmd.Flags().StringVarP(&preprocessOutput, "output", "o", "data/processed/corpus.json", "processed corpus path")
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	pc, err := p.Preprocess(preprocessInput, preprocessOutput)
	if err != nil {
		return err
	}

	s := pc.Meta.Stats
	fmt.Printf("Loaded %d raw records\n", s.TotalArticles)
	fmt.Printf("Kept %d articles (%d empty, %d off topic, %d duplicates)\n",
		s.ValidArticles, s.EmptyContentRemoved, s.NoTopicRemoved, s.DuplicatesRemoved)
	fmt.Printf("Produced %d chunks: %s\n", len(pc.Corpus), preprocessOutput)
	return nil
}
