// Package normalize converts HTML into Markdown with html-to-markdown.
package normalize

import (
	"fmt"
	"net/url"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/gaurav-prasanna/pageutil/core"
)

var _ core.Normalizer = (*MarkdownNormalizer)(nil)

// MarkdownNormalizer converts HTML to Markdown.
type MarkdownNormalizer struct {
	domain string
}

// New creates a MarkdownNormalizer. If baseURL is a valid absolute URL,
// relative links and image sources are resolved against its host.
func New(baseURL string) *MarkdownNormalizer {
	n := &MarkdownNormalizer{}
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		n.domain = u.Scheme + "://" + u.Host
	}
	return n
}

// Normalize converts an HTML document or fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	var opts []converter.ConvertOptionFunc
	if n.domain != "" {
		opts = append(opts, converter.WithDomain(n.domain))
	}

	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
