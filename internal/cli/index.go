package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/skonate/griot/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	indexInput   string
	indexTimeout time.Duration
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the processed corpus and build the vector index",
	Long: `Index embeds every chunk of the processed corpus and rebuilds the
vector index in a single atomic swap. Queries served during a rebuild
see either the old index or the new one, never a mix.

Embeddings are cached, so re-indexing an unchanged corpus only calls
the embedding model for new or modified chunks.

Example:
  griot index
  griot index --input data/processed/corpus.json --timeout 30m`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVarP(&indexInput, "input", "i", "data/processed/corpus.json", "processed corpus path")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 30*time.Minute, "overall indexing timeout")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	start := time.Now()
	count, err := p.Index(ctx, indexInput)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d chunks in %s (%s, dimension %d)\n",
		count, time.Since(start).Round(time.Second), cfg.Embedding.Model, p.Store().Dimension())
	return nil
}
