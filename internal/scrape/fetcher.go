// Package scrape enriches the raw corpus: it fetches cultural pages
// politely (robots.txt, per-domain rate limits), extracts title and body
// text, and merges the results into the raw article file.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skonate/griot/internal/model"
)

// Fetcher downloads pages with retries and a body size cap.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	backoff    time.Duration

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewFetcher creates a Fetcher from the HTTP and scrape configuration.
func NewFetcher(httpCfg model.HTTPConfig, scrapeCfg model.ScrapeConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(httpCfg),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
		maxRetries: scrapeCfg.MaxRetries,
		backoff:    2 * time.Second,
		sleep:      time.Sleep,
	}
}

// Fetch retrieves a page, retrying transient failures with growing backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	attempts := f.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		html, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}
		if attempt < attempts {
			f.sleep(f.backoff * time.Duration(attempt))
		}
	}
	return "", fmt.Errorf("fetch %s: %d attempts failed: %w", rawURL, attempts, lastErr)
}

// proxyFunc resolves the outbound proxy: configured URLs win over the
// HTTP_PROXY/HTTPS_PROXY environment, and hosts listed in no_proxy go direct.
func proxyFunc(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}

	var skip []string
	for _, host := range strings.Split(cfg.NoProxy, ",") {
		if host = strings.TrimSpace(host); host != "" {
			skip = append(skip, host)
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		host := req.URL.Hostname()
		for _, s := range skip {
			if host == s || strings.HasSuffix(host, "."+s) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && cfg.HTTPSProxy != "" {
			return url.Parse(cfg.HTTPSProxy)
		}
		if cfg.HTTPProxy != "" {
			return url.Parse(cfg.HTTPProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
