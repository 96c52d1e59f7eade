package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageutil/core/extract"
	"github.com/gaurav-prasanna/pageutil/core/fetch"
	"github.com/gaurav-prasanna/pageutil/core/normalize"
	"github.com/gaurav-prasanna/pageutil/core/render"
)

var errNoHTML = errors.New("no HTML content")

func newTextCmd(o *options) *cobra.Command {
	var (
		asJSON    bool
		markdown  bool
		mainOnly  bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "text <url|file|->",
		Short: "Print the visible text of an HTML document",
		Long: `Text reads HTML from a URL, a local file, or stdin ("-") and prints the
text content of its <body> with all markup removed.

Examples:
  pageutil text https://example.com
  curl -s https://example.com | pageutil text -
  pageutil text page.html --main --markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			html, err := o.loadHTML(cmd, source)
			if err != nil {
				return err
			}

			extractor := extract.New()
			page := render.Page{Source: source, Title: extractor.Title(html), Format: "text"}

			if mainOnly && html != "" {
				html, err = extractor.MainContent(html)
				if err != nil {
					return fmt.Errorf("extract: %w", err)
				}
			}

			if markdown {
				if html == "" {
					return errNoHTML
				}
				md, err := normalize.New(source).Normalize(html)
				if err != nil {
					return fmt.Errorf("normalize: %w", err)
				}
				page.Text, page.Format = md, "markdown"
			} else {
				text, ok := extractor.Text(html)
				if !ok {
					return errNoHTML
				}
				page.Text = text
			}

			renderer := render.New(asJSON)
			data, err := renderer.Render(page)
			if err != nil {
				return err
			}

			ext := renderer.Extension()
			if markdown && !asJSON {
				ext = ".md"
			}
			return write(cmd, outputDir, source, data, ext)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print source, title and text as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Convert to Markdown instead of plain text")
	cmd.Flags().BoolVar(&mainOnly, "main", false, "Keep only the main content container, dropping navigation and other noise")
	cmd.Flags().StringVar(&outputDir, "output_dir", "", "Write to a file in this directory instead of stdout")
	return cmd
}

// loadHTML reads source as stdin ("-"), an http(s) URL, or a local file.
func (o *options) loadHTML(cmd *cobra.Command, source string) (string, error) {
	if source == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}

	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if err := validateURL(source); err != nil {
			return "", err
		}
		return o.fetchHTML(cmd.Context(), source)
	}

	b, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	return string(b), nil
}

func (o *options) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	result, err := fetch.New(o.cfg, nil, o.log).Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	return result.Body, nil
}
