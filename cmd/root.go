// Package cmd implements the CLI commands for pageutil using Cobra.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageutil/core/config"
	"github.com/gaurav-prasanna/pageutil/core/logging"
)

// options holds the persistent flags and the state built from them
// before any subcommand runs.
type options struct {
	configPath    string
	logLevel      string
	logJSON       bool
	timeout       time.Duration
	userAgent     string
	decodeCharset bool

	cfg config.Config
	log zerolog.Logger
}

// NewRootCmd builds the pageutil command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "pageutil",
		Short: "Fetch HTML, extract text and size remote images",
		Long: `pageutil wraps three small primitives used by scrapers:
fetching a page's HTML, extracting the visible text of an HTML document,
and reading the pixel dimensions of a remote image.

Usage:
  pageutil fetch <url>
  pageutil text <url|file|->
  pageutil imagesize <url>...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "Path to a TOML config file")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&o.logJSON, "log-json", false, "Write logs as JSON lines")
	flags.DurationVar(&o.timeout, "timeout", 0, "HTTP timeout (default 30s)")
	flags.StringVar(&o.userAgent, "user-agent", "", "User-Agent header for outbound requests")
	flags.BoolVar(&o.decodeCharset, "decode-charset", false, "Transcode non-UTF-8 pages to UTF-8")

	root.AddCommand(newFetchCmd(o), newTextCmd(o), newImageSizeCmd(o))
	return root
}

// setup resolves config (defaults, then file, then flags) and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = o.logJSON
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration{Duration: o.timeout}
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = o.userAgent
	}
	if flags.Changed("decode-charset") {
		cfg.DecodeCharset = o.decodeCharset
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = log
	return nil
}

// validateURL requires an absolute http(s) URL.
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
