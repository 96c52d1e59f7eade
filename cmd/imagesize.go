package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageutil/core"
	"github.com/gaurav-prasanna/pageutil/core/imagesize"
	"github.com/gaurav-prasanna/pageutil/core/render"
)

func newImageSizeCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "imagesize <url>...",
		Short: "Print the pixel dimensions of remote images",
		Long: `Imagesize reads just enough of each image to decode its header and
prints "url WIDTHxHEIGHT format". Lookups are best effort: a failed URL
is logged and printed as "url -", and the command still succeeds.

Examples:
  pageutil imagesize https://example.com/a.jpg https://example.com/b.png
  pageutil imagesize https://example.com/a.webp --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := imagesize.New(o.cfg, nil, o.log)

			results := make([]core.ImageResult, 0, len(args))
			for _, u := range args {
				results = append(results, lookup.Size(cmd.Context(), u))
			}

			data, err := render.New(asJSON).Render(render.Images(results))
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as a JSON array")
	return cmd
}
