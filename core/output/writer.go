// Package output writes rendered CLI results.
// Without a directory, output goes to the given stream (stdout in the CLI).
// With one, each result is written to a file named after its source URL,
// e.g. https://example.com/docs/intro → example_com_docs_intro.txt.
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to a stream or a directory.
type Writer struct {
	Dir    string
	Stream io.Writer
}

// New creates a Writer. If dir is non-empty it is created when missing.
func New(dir string, stream io.Writer) (*Writer, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{Dir: dir, Stream: stream}, nil
}

// Write emits data for source. It returns the file path written, or ""
// when data went to the stream.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	if w.Dir == "" {
		if _, err := w.Stream.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "", nil
	}

	path := filepath.Join(w.Dir, FilenameFromURL(source)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL converts a URL into a flat filename. Non-URL sources
// such as local paths or "-" are sanitized as-is.
func FilenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		name := sanitize(strings.Trim(rawURL, "/."))
		if name == "" || strings.Trim(name, "_") == "" {
			return "stdin"
		}
		return name
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
