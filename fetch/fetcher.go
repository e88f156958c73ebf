package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDocumentSize caps how much of a remote document is read (8 MiB).
const maxDocumentSize = 8 << 20

// Fetcher downloads remote documents and converts HTML to markdown.
type Fetcher struct {
	client    *http.Client
	converter *Converter
}

// NewFetcher creates a Fetcher with a default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		converter: NewConverter(),
	}
}

// Fetch retrieves the document at url. HTML responses are converted to
// markdown; markdown and plain-text responses pass through unchanged.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*ConvertResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html, text/markdown, text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || looksLikeHTML(body) {
		return f.converter.Convert(body)
	}

	return &ConvertResult{Markdown: string(body)}, nil
}

// looksLikeHTML sniffs for an HTML document when the server did not
// send a useful content type.
func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(string(body[:min(len(body), 512)]))
	return strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html")
}
