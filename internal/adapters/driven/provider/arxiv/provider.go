// Package arxiv provides a paper provider backed by the arXiv API.
//
// The arXiv export API speaks Atom XML over plain HTTP and needs no
// authentication, but asks clients to stay under one request every
// three seconds; the provider throttles itself accordingly.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.PaperProvider = (*Provider)(nil)

const (
	// DefaultBaseURL is the arXiv export API endpoint.
	DefaultBaseURL = "https://export.arxiv.org/api/query"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// requestInterval is the polite request spacing arXiv asks for.
	requestInterval = 3 * time.Second
)

// Config holds configuration for the arXiv provider.
type Config struct {
	// BaseURL overrides the API endpoint (mainly for tests).
	BaseURL string

	// Timeout is the HTTP request timeout (default: 60s).
	Timeout time.Duration
}

// Provider searches arXiv and downloads paper PDFs.
type Provider struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// atomFeed is the arXiv API response envelope.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

// atomEntry is one paper in the feed.
type atomEntry struct {
	ID      string     `xml:"id"`
	Title   string     `xml:"title"`
	Summary string     `xml:"summary"`
	Links   []atomLink `xml:"link"`
}

// atomLink carries the landing page and PDF URLs.
type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// New creates an arXiv provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Provider{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Search returns up to limit papers matching the query, in arXiv
// relevance order.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]driven.PaperResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("max_results", fmt.Sprintf("%d", limit))
	params.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	results, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	logger.Debug("arXiv returned %d entries for %q", len(results), query)
	return results, nil
}

// parseFeed converts an Atom feed into paper results. Entries without
// a PDF link are skipped.
func parseFeed(body []byte) ([]driven.PaperResult, error) {
	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}

	results := make([]driven.PaperResult, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		pdfURL := entry.pdfLink()
		if pdfURL == "" {
			logger.Warn("Skipping %q: no PDF link", entry.Title)
			continue
		}
		results = append(results, driven.PaperResult{
			Title:     normalizeWhitespace(entry.Title),
			Abstract:  normalizeWhitespace(entry.Summary),
			URL:       entry.ID,
			SourceURL: pdfURL,
		})
	}
	return results, nil
}

// pdfLink finds the entry's PDF URL, if any.
func (e atomEntry) pdfLink() string {
	for _, link := range e.Links {
		if link.Title == "pdf" || link.Type == "application/pdf" {
			return link.Href
		}
	}
	return ""
}

// Download fetches the paper's PDF into dir, named after the last
// path segment of the PDF URL (the arXiv identifier).
func (p *Provider) Download(ctx context.Context, result driven.PaperResult, dir string) (string, error) {
	if result.SourceURL == "" {
		return "", fmt.Errorf("%w: paper %q has no source URL", domain.ErrInvalidInput, result.Title)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.SourceURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arxiv: status %d downloading %s", resp.StatusCode, result.SourceURL)
	}

	localPath := filepath.Join(dir, defaultFileName(result.SourceURL))
	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	logger.Debug("Downloaded %s", localPath)
	return localPath, nil
}

// defaultFileName derives the local file name from the PDF URL,
// e.g. https://arxiv.org/pdf/2301.00001v2 -> 2301.00001v2.pdf.
func defaultFileName(sourceURL string) string {
	name := path.Base(sourceURL)
	if name == "." || name == "/" || name == "" {
		name = "paper"
	}
	if !strings.HasSuffix(name, ".pdf") {
		name += ".pdf"
	}
	return name
}

// normalizeWhitespace collapses the newlines and padding arXiv embeds
// in titles and abstracts.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
