// Package fetch retrieves earnings release pages over HTTP for the extraction core.
package fetch

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
)

// PageCache provides file-based caching for fetched page HTML
type PageCache struct {
	cacheDir string
}

// NewPageCache creates a new page cache.
// Cache directory defaults to .cache/earnings/html in the current working directory.
func NewPageCache() *PageCache {
	cacheDir := filepath.Join(".cache", "earnings", "html")
	os.MkdirAll(cacheDir, 0755)
	return &PageCache{cacheDir: cacheDir}
}

// NewPageCacheWithDir creates a cache with a custom directory
func NewPageCacheWithDir(dir string) *PageCache {
	os.MkdirAll(dir, 0755)
	return &PageCache{cacheDir: dir}
}

// cacheKey generates a unique key for a page URL
func (c *PageCache) cacheKey(url string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(url)))
}

// filePath returns the file path for a cache entry
func (c *PageCache) filePath(key string) string {
	return filepath.Join(c.cacheDir, key+".html")
}

// Get retrieves cached HTML for a URL.
// Returns empty string if not cached.
func (c *PageCache) Get(url string) string {
	data, err := os.ReadFile(c.filePath(c.cacheKey(url)))
	if err != nil {
		return ""
	}
	return string(data)
}

// Set stores page HTML in the cache
func (c *PageCache) Set(url, html string) error {
	return os.WriteFile(c.filePath(c.cacheKey(url)), []byte(html), 0644)
}

// Has reports whether a URL is cached
func (c *PageCache) Has(url string) bool {
	_, err := os.Stat(c.filePath(c.cacheKey(url)))
	return err == nil
}

// Clear removes all cached pages
func (c *PageCache) Clear() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.cacheDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
