package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	pointsio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	refresh     bool   // bypass the document cache
	cache       string // cache backend override: none, file, memory, redis, mongo
	input       string // local HTML file read instead of fetching
	points      string // points file rendered instead of a document
	output      string // points file written after a successful run
	plain       bool   // print only the plain grid
	bordered    bool   // print only the bordered grid
	interactive bool   // open the grid viewer
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [url]",
		Short: "Fetch a document and print its coordinate tables as a grid",
		Long: `Fetch a published HTML document, read every table row of the form
(x, character, y) and print the characters on a grid with y=0 at the bottom.

Without a URL the config file's url is used, falling back to the built-in
published document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.input != "" || opts.points != "") && len(args) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--input and --points cannot be combined with a URL argument")
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the document cache")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "cache backend: none, file, memory, redis, mongo (overrides config)")
	_ = cmd.RegisterFlagCompletionFunc("cache", completeCacheBackends)
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read HTML from a local file instead of fetching")
	cmd.Flags().StringVar(&opts.points, "points", "", "render a points file written by --output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the extracted points to a JSON file")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print only the plain grid")
	cmd.Flags().BoolVar(&opts.bordered, "bordered", false, "print only the bordered grid")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "open the interactive grid viewer")
	cmd.MarkFlagsMutuallyExclusive("plain", "bordered", "interactive")
	cmd.MarkFlagsMutuallyExclusive("input", "points")

	return cmd
}

// runRender executes the pipeline and prints the result.
func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	if opts.interactive && logger.GetLevel() > log.DebugLevel {
		logger = newLogger(os.Stderr, log.WarnLevel)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	url := cfg.URL
	if len(args) > 0 {
		url = args[0]
	}

	runner, store, err := c.newRunner(ctx, cfg, opts.cache, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var spinner *Spinner
	if opts.interactive {
		spinner = newSpinnerWithContext(ctx, "Fetching document...")
		spinner.Start()
	}

	prog := newProgress(logger)
	res, err := c.execute(ctx, runner, url, opts)
	if spinner != nil {
		spinner.Stop()
	}

	out := c.out()
	switch {
	case errors.Is(err, errors.ErrCodeNoTables):
		fmt.Fprintln(out, "No tables found")
		return nil
	case errors.Is(err, errors.ErrCodeNoData):
		fmt.Fprintf(out, "\nTotal data points found: 0\n")
		fmt.Fprintln(out, "No valid data found")
		return nil
	case err != nil:
		return err
	}
	prog.done(fmt.Sprintf("Rendered %dx%d grid", res.Stats.Width, res.Stats.Height))
	if n := res.Grid.Misaligned(); n > 0 {
		logger.Warn("Some cells are not one column wide; rows may not line up", "cells", n)
	}

	if opts.output != "" {
		if err := pointsio.ExportJSON(res.Interpretation, res.URL, opts.output); err != nil {
			return err
		}
		logger.Info("Wrote points", "path", opts.output, "count", res.Stats.Entries)
	}

	switch {
	case opts.interactive:
		return runGridViewer(ctx, res)
	case opts.plain:
		fmt.Fprint(out, res.Plain)
	case opts.bordered:
		fmt.Fprint(out, res.Bordered)
	default:
		writeReport(out, res)
	}
	return nil
}

// execute runs the pipeline against the URL, the --input file or the
// --points file.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, url string, opts renderOpts) (*pipeline.Result, error) {
	if opts.points != "" {
		pts, err := pointsio.ImportJSON(opts.points)
		if err != nil {
			return nil, err
		}
		source := pts.Source
		if source == "" {
			source = opts.points
		}
		return runner.ExecuteEntries(ctx, source, pts.Entries)
	}
	if opts.input == "" {
		return runner.Execute(ctx, pipeline.Options{URL: url, Refresh: opts.refresh})
	}

	doc, err := readDocument(opts.input)
	if err != nil {
		return nil, err
	}
	return runner.ExecuteDocument(ctx, doc, pipeline.Options{URL: doc.URL})
}

// readDocument loads a local HTML file as a document.
func readDocument(path string) (*fetch.Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &fetch.Document{
		URL:       "file://" + filepath.ToSlash(abs),
		Body:      body,
		FetchedAt: time.Now(),
	}, nil
}

// writeReport prints the summary, the bordered grid and the plain grid.
func writeReport(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "\nTotal data points found: %d\n", res.Stats.Entries)
	printStats(w, res.Stats.Tables, res.Stats.Entries, res.Stats.Skipped, res.CacheInfo.DocumentHit)
	fmt.Fprintf(w, "\nGrid dimensions: %d (width) x %d (height)\n", res.Stats.Width, res.Stats.Height)
	fmt.Fprintln(w, "Generated grid:")
	fmt.Fprint(w, res.Bordered)
	fmt.Fprintln(w, "\nPlain text version:")
	fmt.Fprint(w, res.Plain)
}
