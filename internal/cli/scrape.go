package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/corpus"
	"github.com/skonate/griot/internal/scrape"
	"github.com/spf13/cobra"
)

var (
	scrapeOutput  string
	scrapeMerge   bool
	scrapeWorkers int
	scrapeRate    float64
	scrapeTimeout time.Duration
	noCache       bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <urls-file>",
	Short: "Fetch articles from a list of URLs",
	Long: `Scrape fetches article pages listed in a file (one URL per line,
blank lines and # comments ignored) and writes them as raw records.

Robots.txt is honored, requests are rate limited per domain, and PDF
URLs are skipped. Pages already fetched are served from the cache.

Example:
  griot scrape urls.txt
  griot scrape urls.txt --output data/raw/articles.json --merge`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "data/raw/articles.json", "output JSON path")
	scrapeCmd.Flags().BoolVar(&scrapeMerge, "merge", false, "append to existing output instead of overwriting")
	scrapeCmd.Flags().IntVar(&scrapeWorkers, "workers", 0, "concurrent fetchers (0 = config default)")
	scrapeCmd.Flags().Float64Var(&scrapeRate, "rate", 0, "requests per second per domain (0 = config default)")
	scrapeCmd.Flags().DurationVar(&scrapeTimeout, "timeout", 15*time.Minute, "overall scrape timeout")
	scrapeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetches)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scrapeWorkers > 0 {
		cfg.Scrape.Workers = scrapeWorkers
	}
	if scrapeRate > 0 {
		cfg.Scrape.RequestsPerSecond = scrapeRate
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	urls, err := scrape.ReadURLs(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	scraper := scrape.NewScraper(cfg, pageCache)
	records, stats := scraper.Scrape(ctx, urls)

	if scrapeMerge {
		existing, err := corpus.LoadRaw(scrapeOutput)
		if err == nil {
			records = append(existing, records...)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading existing output: %w", err)
		}
	}

	if err := corpus.WriteRaw(scrapeOutput, records); err != nil {
		return err
	}

	fmt.Printf("Scraped %d/%d URLs (%d failed, %d PDF skipped, %d blocked by robots.txt)\n",
		stats.Succeeded, stats.Total, stats.Failed, stats.PDFSkipped, stats.RobotsBlocked)
	fmt.Printf("Wrote %d records: %s\n", len(records), scrapeOutput)
	return nil
}
