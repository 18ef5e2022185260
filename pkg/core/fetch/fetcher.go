package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UserAgent mimics a desktop Edge browser; several investor-relations sites
// serve reduced or empty pages to unknown clients.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36 Edg/144.0.0.0"

// MinContentLength is the markup size below which a response is treated as an
// empty or bot-blocked page and rejected before it reaches the extraction core.
const MinContentLength = 500

// DefaultTimeout bounds one page retrieval
const DefaultTimeout = 45 * time.Second

// PageFetcher retrieves earnings release pages over plain HTTP.
// It stands in for the headless-browser layer: the extraction core only sees
// the HTML string this fetcher hands over.
type PageFetcher struct {
	client   *http.Client
	cache    *PageCache // optional
	debugDir string     // optional, dumps fetched HTML for inspection
}

// NewPageFetcher creates a fetcher. If cacheDir is non-empty, fetched pages
// are cached there.
func NewPageFetcher(cacheDir string) *PageFetcher {
	f := &PageFetcher{
		client: &http.Client{Timeout: DefaultTimeout},
	}
	if cacheDir != "" {
		f.cache = NewPageCacheWithDir(cacheDir)
	}
	return f
}

// SetDebugDir enables saving fetched HTML to the given directory
func (f *PageFetcher) SetDebugDir(dir string) {
	f.debugDir = dir
}

// FetchHTML downloads a page and returns its raw HTML.
// Responses under MinContentLength characters fail: the caller is expected to
// turn that into an error record rather than extract from a stub page.
func (f *PageFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		if html := f.cache.Get(url); html != "" {
			return html, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("page load failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	html := string(body)
	if len(html) < MinContentLength {
		return "", fmt.Errorf("page returned minimal content (%d chars) - possible bot detection", len(html))
	}

	if f.cache != nil {
		if err := f.cache.Set(url, html); err != nil {
			fmt.Printf("[Fetcher] cache write failed: %v\n", err)
		}
	}

	return html, nil
}

// SaveDebugHTML writes the fetched HTML to the debug directory and returns
// the file path. A no-op returning "" when no debug directory is configured.
func (f *PageFetcher) SaveDebugHTML(company, period, html string) (string, error) {
	if f.debugDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(f.debugDir, 0755); err != nil {
		return "", err
	}

	filename := sanitizeFilename(company) + "_" + sanitizeFilename(period) + ".html"
	path := filepath.Join(f.debugDir, filename)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeFilename makes a company or period label safe for file names
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
