package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"sleuth/pkg/loader"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// WebArticleLoader loads articles from web URLs and extracts readable text.
// For HTML pages, it uses readability to extract the main article content.
// Fetched articles are cached; concurrent fetches of the same URL are
// collapsed into a single request.
type WebArticleLoader struct {
	client *http.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebArticleLoader creates a new web loader using http.DefaultClient.
func NewWebArticleLoader() *WebArticleLoader {
	return &WebArticleLoader{
		client: http.DefaultClient,
		cache:  make(map[string][]byte),
	}
}

// NewWebArticleLoaderWithClient creates a web loader using a preconfigured
// http.Client (e.g. with custom timeouts or a proxy).
func NewWebArticleLoaderWithClient(client *http.Client) *WebArticleLoader {
	return &WebArticleLoader{
		client: client,
		cache:  make(map[string][]byte),
	}
}

// GetArticleText fetches a URL and extracts readable text content.
// For HTML pages, it uses readability to extract the main article content;
// other text responses are returned as-is.
func (l *WebArticleLoader) GetArticleText(ctx context.Context, article loader.Article) ([]byte, error) {
	key := loader.CacheKey(article)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, article.Location, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, article.Location)
		}

		var text []byte
		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			u, err := url.Parse(article.Location)
			if err != nil {
				return nil, fmt.Errorf("failed to parse url: %w", err)
			}
			parsed, err := readability.FromReader(resp.Body, u)
			if err != nil {
				return nil, fmt.Errorf("failed to parse html: %w", err)
			}
			var builder strings.Builder
			if err := parsed.RenderText(&builder); err != nil {
				return nil, fmt.Errorf("failed to render article text: %w", err)
			}
			text = []byte(builder.String())
		} else {
			text, err = io.ReadAll(resp.Body)
			if err != nil {
				return nil, err
			}
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
