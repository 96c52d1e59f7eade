package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageutil/core/fetch"
	"github.com/gaurav-prasanna/pageutil/core/output"
	"github.com/gaurav-prasanna/pageutil/core/render"
)

func newFetchCmd(o *options) *cobra.Command {
	var (
		asJSON    bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a page and print its HTML",
		Long: `Fetch issues a single GET for the URL and prints the response body.
Only a 200 response with a non-empty body succeeds; anything else exits
with an error naming the status code and URL.

Examples:
  pageutil fetch https://example.com
  pageutil fetch https://example.com --json
  pageutil fetch https://example.com --output_dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]
			if err := validateURL(rawURL); err != nil {
				return err
			}

			fetcher := fetch.New(o.cfg, nil, o.log)
			result, err := fetcher.Fetch(cmd.Context(), rawURL)
			if err != nil {
				return fmt.Errorf("fetch: %w", err)
			}

			renderer := render.New(asJSON)
			data, err := renderer.Render(result)
			if err != nil {
				return err
			}

			ext := renderer.Extension()
			if !asJSON {
				ext = ".html"
			}
			return write(cmd, outputDir, rawURL, data, ext)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status, content type and body as JSON")
	cmd.Flags().StringVar(&outputDir, "output_dir", "", "Write to a file in this directory instead of stdout")
	return cmd
}

// write sends data to stdout, or to a file under dir named after source.
func write(cmd *cobra.Command, dir, source string, data []byte, ext string) error {
	w, err := output.New(dir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := w.Write(source, data, ext)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Written: %s\n", path)
	}
	return nil
}
