// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET and classifies the response: only a 200
// with a non-empty body counts as success.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/pageutil/core"
	"github.com/gaurav-prasanna/pageutil/core/config"
)

var _ core.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client        *http.Client
	userAgent     string
	decodeCharset bool
	log           zerolog.Logger
}

// New creates an HTTPFetcher from cfg. A nil client gets a fresh
// *http.Client using cfg's timeout.
func New(cfg config.Config, client *http.Client, log zerolog.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout.Duration}
	}
	return &HTTPFetcher{
		client:        client,
		userAgent:     cfg.UserAgent,
		decodeCharset: cfg.DecodeCharset,
		log:           log.With().Str("component", "fetch").Logger(),
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &core.FetchError{Kind: core.KindInvalidURL, Err: core.ErrInvalidURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &core.FetchError{
			Kind: core.KindInvalidURL,
			URL:  url,
			Err:  fmt.Errorf("%w: %v", core.ErrInvalidURL, err),
		}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	f.log.Debug().Str("url", url).Msg("fetching html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.fail(&core.FetchError{Kind: core.KindTransport, URL: url, Err: err})
	}
	defer resp.Body.Close()

	body, err := f.readBody(resp)
	if err != nil {
		return nil, f.fail(&core.FetchError{Kind: core.KindTransport, URL: url, Err: err})
	}

	switch {
	case resp.StatusCode == http.StatusOK && len(body) > 0:
		return &core.FetchResult{
			URL:         url,
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
			FetchedAt:   time.Now().UTC(),
		}, nil
	case resp.StatusCode == http.StatusOK:
		return nil, f.fail(&core.FetchError{
			Kind:       core.KindEmptyContent,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        core.ErrEmptyContent,
		})
	default:
		return nil, f.fail(&core.FetchError{
			Kind:       core.KindBadStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        core.ErrWrongStatus,
		})
	}
}

// readBody reads the whole response, transcoding to UTF-8 when enabled
// and the response declares another charset. Unknown charsets are read
// as received.
func (f *HTTPFetcher) readBody(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body
	if label := declaredCharset(resp.Header.Get("Content-Type")); f.decodeCharset && label != "" {
		decoded, err := charset.NewReaderLabel(label, resp.Body)
		if err != nil {
			f.log.Warn().
				Str("url", resp.Request.URL.String()).
				Str("charset", label).
				Err(err).
				Msg("unsupported charset, keeping raw body")
		} else {
			r = decoded
		}
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(b), nil
}

// declaredCharset returns the Content-Type charset parameter unless it is
// missing or already UTF-8.
func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	if label == "" || label == "utf-8" || label == "utf8" {
		return ""
	}
	return label
}

func (f *HTTPFetcher) fail(fe *core.FetchError) error {
	ev := f.log.Warn().
		Str("url", fe.URL).
		Stringer("kind", fe.Kind).
		AnErr("error", fe.Err)
	if fe.StatusCode != 0 {
		ev = ev.Int("status_code", fe.StatusCode)
	}
	ev.Msg("fetch failed")
	return fe
}
