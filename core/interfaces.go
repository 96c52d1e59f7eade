// Package core defines the shared types and component interfaces for pageutil.
// Each primitive (fetch, text extraction, image size lookup) is a small,
// independently testable interface.
package core

import (
	"context"
	"time"
)

// FetchResult holds the body and response metadata of a successful fetch.
// Body is never empty when a FetchResult is returned without error.
type FetchResult struct {
	URL         string    `json:"url"`
	StatusCode  int       `json:"status_code"`
	ContentType string    `json:"content_type,omitempty"`
	Body        string    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// ImageSize is the pixel geometry of a decoded image header.
type ImageSize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// ImageResult is the outcome of an image size lookup. Exactly one of
// Size and Err is set. Failures are already logged by the time the
// caller sees them.
type ImageResult struct {
	URL  string
	Size *ImageSize
	Err  error
}

// OK reports whether the lookup produced dimensions.
func (r ImageResult) OK() bool {
	return r.Size != nil
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// TextExtractor turns an HTML document into its visible body text.
// ok is false only when html is empty.
type TextExtractor interface {
	Text(html string) (text string, ok bool)
}

// ImageSizer looks up the dimensions of a remote image.
type ImageSizer interface {
	Size(ctx context.Context, url string) ImageResult
}

// Normalizer converts HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}
