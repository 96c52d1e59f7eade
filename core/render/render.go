// Package render formats pageutil results for the CLI.
// Plain text is the default; JSON output is indented and stable so it
// can be piped into other tools.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pageutil/core"
)

// Renderer turns a result value into output bytes.
type Renderer interface {
	Render(v any) ([]byte, error)
	// Extension returns the file extension used when writing to a directory.
	Extension() string
}

// Page is the result of a text extraction.
type Page struct {
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format"`
	Text   string `json:"text"`
}

// Image is one line of image size output.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Images converts lookup results into renderable rows.
func Images(results []core.ImageResult) []Image {
	out := make([]Image, 0, len(results))
	for _, r := range results {
		img := Image{URL: r.URL}
		switch {
		case r.OK():
			img.Width = r.Size.Width
			img.Height = r.Size.Height
			img.Format = r.Size.Format
		case r.Err != nil:
			img.Error = r.Err.Error()
		}
		out = append(out, img)
	}
	return out
}

// New returns the JSON renderer when asJSON is set, else the text renderer.
func New(asJSON bool) Renderer {
	if asJSON {
		return NewJSONRenderer()
	}
	return NewTextRenderer()
}

// JSONRenderer produces indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func (r *JSONRenderer) Extension() string {
	return ".json"
}

// TextRenderer writes bodies and text verbatim and images one per line.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(v any) ([]byte, error) {
	switch t := v.(type) {
	case *core.FetchResult:
		return []byte(t.Body), nil
	case Page:
		return []byte(withNewline(t.Text)), nil
	case []Image:
		var b strings.Builder
		for _, img := range t {
			if img.Error != "" || img.Width == 0 {
				fmt.Fprintf(&b, "%s -\n", img.URL)
				continue
			}
			fmt.Fprintf(&b, "%s %dx%d %s\n", img.URL, img.Width, img.Height, img.Format)
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("cannot render %T as text", v)
	}
}

func (r *TextRenderer) Extension() string {
	return ".txt"
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
