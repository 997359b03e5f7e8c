package scrape

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/model"
	"github.com/skonate/griot/internal/util"
	"github.com/skonate/griot/internal/worker"
)

// Stats summarizes one scrape run.
type Stats struct {
	Total         int `json:"total"`
	Succeeded     int `json:"succeeded"`
	Failed        int `json:"failed"`
	PDFSkipped    int `json:"pdf_skipped"`
	RobotsBlocked int `json:"robots_blocked"`
}

// Scraper fetches a list of URLs concurrently while staying polite: it
// honors robots.txt (including crawl delays) and rate-limits per domain.
type Scraper struct {
	fetcher   *Fetcher
	robots    *util.RobotsChecker
	limiter   *worker.Limiter
	pageCache cache.Cache
	workers   int
	minChars  int
	verbose   bool
}

// NewScraper assembles a Scraper. pageCache may be nil.
func NewScraper(cfg *model.Config, pageCache cache.Cache) *Scraper {
	return &Scraper{
		fetcher:   NewFetcher(cfg.HTTP, cfg.Scrape),
		robots:    util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		limiter:   worker.NewLimiter(cfg.Scrape.RequestsPerSecond, cfg.Scrape.Burst),
		pageCache: pageCache,
		workers:   cfg.Scrape.Workers,
		minChars:  cfg.Scrape.MinContentChars,
		verbose:   cfg.Output.Verbose,
	}
}

// IsPDFURL reports whether the URL points at a PDF. PDFs are skipped and
// counted rather than fetched; text extraction from PDFs is out of scope.
func IsPDFURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasSuffix(lower, ".pdf") || strings.Contains(lower, "/pdf/")
}

type fetchJob struct {
	url     string
	scraper *Scraper
}

type fetchResult struct {
	url    string
	record *model.RawRecord
	err    error
}

func (r *fetchResult) GetError() error { return r.err }

func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	record, err := j.scraper.scrapeOne(ctx, j.url)
	return &fetchResult{url: j.url, record: record, err: err}
}

// Scrape fetches all URLs and returns the extracted records plus run stats.
// PDF and robots-blocked URLs are counted, not treated as failures.
func (s *Scraper) Scrape(ctx context.Context, urls []string) ([]model.RawRecord, Stats) {
	stats := Stats{Total: len(urls)}

	var toFetch []string
	for _, u := range urls {
		if IsPDFURL(u) {
			stats.PDFSkipped++
			s.logf("skipping PDF: %s\n", u)
			continue
		}
		toFetch = append(toFetch, u)
	}

	pool := worker.NewPool(s.workers)
	pool.Start(ctx)
	defer pool.Shutdown()

	go func() {
		for _, u := range toFetch {
			pool.Submit(&fetchJob{url: u, scraper: s})
		}
		pool.Close()
	}()

	var records []model.RawRecord
	for result := range pool.Results() {
		r := result.(*fetchResult)
		switch {
		case errors.Is(r.err, errRobotsBlocked):
			stats.RobotsBlocked++
			s.logf("blocked by robots.txt: %s\n", r.url)
		case r.err != nil:
			stats.Failed++
			s.logf("failed: %s: %v\n", r.url, r.err)
		default:
			stats.Succeeded++
			records = append(records, *r.record)
		}
	}

	return records, stats
}

var errRobotsBlocked = errors.New("blocked by robots.txt")

func (s *Scraper) scrapeOne(ctx context.Context, rawURL string) (*model.RawRecord, error) {
	allowed, crawlDelay, err := s.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errRobotsBlocked
	}

	if err := s.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, err
	}

	page, err := s.fetchPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	title, content := Extract(page)
	if len(content) < s.minChars {
		return nil, fmt.Errorf("content too short (%d chars)", len(content))
	}

	return &model.RawRecord{
		URL:      rawURL,
		Title:    title,
		Content:  content,
		Date:     time.Now().Format("2006-01-02"),
		Category: "Culture",
	}, nil
}

func (s *Scraper) fetchPage(ctx context.Context, rawURL string) (string, error) {
	key := cache.PageKey(rawURL)
	if s.pageCache != nil {
		if data, found := s.pageCache.Get(key); found {
			return string(data), nil
		}
	}

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if s.pageCache != nil {
		_ = s.pageCache.Set(key, []byte(page), 0)
	}
	return page, nil
}

func (s *Scraper) logf(format string, args ...any) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// ReadURLs reads one URL per line, skipping blanks, comments, and
// duplicates.
func ReadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
