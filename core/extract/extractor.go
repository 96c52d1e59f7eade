// Package extract turns HTML into text.
// Parsing goes through goquery on top of golang.org/x/net/html, which
// accepts any input: malformed markup yields best-effort text, never an error.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/pageutil/core"
)

var _ core.TextExtractor = (*HTMLExtractor)(nil)

// ErrNoContent is returned by MainContent when there is nothing to extract.
var ErrNoContent = errors.New("no content container found in HTML")

// noiseSelectors are removed before isolating main content.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor extracts text and content fragments from HTML documents.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Text returns the concatenated text of everything under <body>, with
// markup stripped and whitespace left as the parser produced it.
// ok is false when html is empty.
func (e *HTMLExtractor) Text(html string) (string, bool) {
	if html == "" {
		return "", false
	}
	doc, err := parse(html)
	if err != nil {
		return "", true
	}
	return doc.Find("body").Text(), true
}

// MainContent returns the outer HTML of the best content container
// (<main>, then <article>, then <body>) after stripping noise elements.
func (e *HTMLExtractor) MainContent(html string) (string, error) {
	if html == "" {
		return "", ErrNoContent
	}
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", ErrNoContent
	}

	out, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return out, nil
}

// Title returns the trimmed <title> text, or "" if there is none.
func (e *HTMLExtractor) Title(html string) string {
	if html == "" {
		return ""
	}
	doc, err := parse(html)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
