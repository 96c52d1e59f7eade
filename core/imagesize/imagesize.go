// Package imagesize looks up the pixel dimensions of remote images.
//
// Only the image header is decoded, so a lookup usually reads a few
// hundred bytes of the response. Lookups are best effort: failures are
// logged here and reported to the caller as an ImageResult without a
// Size, never as a returned error.
package imagesize

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gaurav-prasanna/pageutil/core"
	"github.com/gaurav-prasanna/pageutil/core/config"
)

var errEmptyURL = errors.New("empty image url")

var _ core.ImageSizer = (*Lookup)(nil)

// Lookup fetches image headers over HTTP.
type Lookup struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	log       zerolog.Logger
}

// New creates a Lookup. A nil client gets a fresh *http.Client using
// cfg's timeout.
func New(cfg config.Config, client *http.Client, log zerolog.Logger) *Lookup {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout.Duration}
	}
	return &Lookup{
		client:    client,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxImageBytes,
		log:       log.With().Str("component", "imagesize").Logger(),
	}
}

// Size returns the dimensions of the image at url. On failure the error
// is logged and the result carries Err instead of Size.
func (l *Lookup) Size(ctx context.Context, url string) core.ImageResult {
	size, err := l.lookup(ctx, url)
	if err != nil {
		l.log.Error().Str("url", url).Err(err).Msg("image size lookup failed")
		return core.ImageResult{URL: url, Err: err}
	}
	return core.ImageResult{URL: url, Size: size}
}

// Dimensions is Size without the failure detail: nil means the lookup failed.
func (l *Lookup) Dimensions(ctx context.Context, url string) *core.ImageSize {
	return l.Size(ctx, url).Size
}

func (l *Lookup) lookup(ctx context.Context, url string) (*core.ImageSize, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if l.maxBytes > 0 {
		body = io.LimitReader(resp.Body, l.maxBytes)
	}

	cfg, format, err := image.DecodeConfig(bufio.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return &core.ImageSize{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
