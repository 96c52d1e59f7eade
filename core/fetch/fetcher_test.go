package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pageutil/core"
	"github.com/gaurav-prasanna/pageutil/core/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestFetcher(t *testing.T, client *http.Client) *HTTPFetcher {
	t.Helper()
	return New(config.Default(), client, zerolog.Nop())
}

func TestFetch_EmptyURL_NoNetwork(t *testing.T) {
	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("should not be called")
	})}
	f := newTestFetcher(t, client)

	for _, u := range []string{"", "   "} {
		res, err := f.Fetch(context.Background(), u)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, core.ErrInvalidURL)
		assert.Equal(t, core.KindInvalidURL, core.KindOf(err))
	}
	assert.Zero(t, calls.Load())
}

func TestFetch_UnparseableURL(t *testing.T) {
	f := newTestFetcher(t, nil)

	_, err := f.Fetch(context.Background(), "http://[::1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidURL)
}

func TestFetch_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, config.Default().UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html><body>hi</body></html>")
	}))
	defer ts.Close()

	f := newTestFetcher(t, ts.Client())
	res, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<html><body>hi</body></html>", res.Body)
	assert.Equal(t, ts.URL, res.URL)
	assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
	assert.False(t, res.FetchedAt.IsZero())
}

func TestFetch_EmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f := newTestFetcher(t, ts.Client())
	res, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Nil(t, res)

	var fe *core.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, core.KindEmptyContent, fe.Kind)
	assert.Equal(t, http.StatusOK, fe.StatusCode)
	assert.Equal(t, ts.URL, fe.URL)
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}

func TestFetch_WrongStatus(t *testing.T) {
	codes := []int{http.StatusCreated, http.StatusNoContent, http.StatusNotFound, http.StatusInternalServerError}

	for _, code := range codes {
		t.Run(http.StatusText(code), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
				if code != http.StatusNoContent {
					_, _ = io.WriteString(w, "body present")
				}
			}))
			defer ts.Close()

			f := newTestFetcher(t, ts.Client())
			_, err := f.Fetch(context.Background(), ts.URL)
			require.Error(t, err)

			var fe *core.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, core.KindBadStatus, fe.Kind)
			assert.Equal(t, code, fe.StatusCode)
			assert.Equal(t, ts.URL, fe.URL)
			assert.ErrorIs(t, err, core.ErrWrongStatus)
		})
	}
}

func TestFetch_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})}
	f := newTestFetcher(t, client)

	_, err := f.Fetch(context.Background(), "http://example.invalid/page")
	require.Error(t, err)

	var fe *core.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, core.KindTransport, fe.Kind)
	assert.Equal(t, "http://example.invalid/page", fe.URL)
	assert.Zero(t, fe.StatusCode)
	assert.ErrorIs(t, err, boom)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	f := newTestFetcher(t, &http.Client{Timeout: time.Second})

	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Equal(t, core.KindTransport, core.KindOf(err))
}

func TestFetch_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "late")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(t, ts.Client())
	_, err := f.Fetch(ctx, ts.URL)
	require.Error(t, err)
	assert.Equal(t, core.KindTransport, core.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_DecodeCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte("caf\xe9"))
	}))
	defer ts.Close()

	cfg := config.Default()
	raw := New(cfg, ts.Client(), zerolog.Nop())
	res, err := raw.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", res.Body)

	cfg.DecodeCharset = true
	decoding := New(cfg, ts.Client(), zerolog.Nop())
	res, err = decoding.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", res.Body)

	t.Run("unknown charset keeps raw body", func(t *testing.T) {
		bogus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=x-bogus")
			_, _ = io.WriteString(w, "<html><body>hi</body></html>")
		}))
		defer bogus.Close()

		var logs bytes.Buffer
		f := New(cfg, bogus.Client(), zerolog.New(&logs))
		res, err := f.Fetch(context.Background(), bogus.URL)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "<html><body>hi</body></html>", res.Body)
		assert.Contains(t, logs.String(), "x-bogus")
		assert.Contains(t, logs.String(), `"level":"warn"`)
	})
}

func TestDeclaredCharset(t *testing.T) {
	tests := map[string]string{
		"":                                "",
		"text/html":                       "",
		"text/html; charset=utf-8":        "",
		"text/html; charset=UTF-8":        "",
		"text/html; charset=windows-1252": "windows-1252",
		"text/html; charset=Shift_JIS":    "shift_jis",
		"not a media type;;":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, declaredCharset(in), in)
	}
}
