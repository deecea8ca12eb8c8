package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/htmltable"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
	"github.com/matzehuels/glyphgrid/pkg/observability"
)

// Fetcher retrieves documents. *fetch.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string, refresh bool) (*fetch.Document, error)
}

// Runner executes pipeline runs. It holds no per-run state, so one Runner
// may serve concurrent runs.
type Runner struct {
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(f Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = discardLogger()
	}
	return &Runner{Fetcher: f, Logger: logger}
}

// Execute fetches opts.URL and runs every stage on it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	if r.Fetcher == nil {
		return nil, errors.New(errors.ErrCodeInternal, "pipeline has no fetcher")
	}

	logger.Info("Fetching document", "url", opts.URL)
	hooks.OnFetchStart(ctx, opts.URL)
	start := time.Now()
	doc, err := r.Fetcher.Fetch(ctx, opts.URL, opts.Refresh)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.URL, 0, elapsed, err)
		return nil, err
	}
	hooks.OnFetchComplete(ctx, doc.URL, len(doc.Body), elapsed, nil)
	logger.Info("Document fetched", "bytes", len(doc.Body), "cached", doc.Cached, "duration", elapsed.Round(time.Millisecond))

	res, err := r.ExecuteDocument(ctx, doc, opts)
	if res != nil {
		res.Stats.FetchTime = elapsed
	}
	return res, err
}

// ExecuteDocument runs the discover, interpret and render stages on an
// already retrieved document.
func (r *Runner) ExecuteDocument(ctx context.Context, doc *fetch.Document, opts Options) (*Result, error) {
	logger := r.logger(opts)
	res := &Result{
		RunID:     uuid.NewString(),
		URL:       doc.URL,
		CacheInfo: CacheInfo{DocumentHit: doc.Cached},
	}
	res.Stats.Bytes = len(doc.Body)

	start := time.Now()
	tables, err := Discover(doc.Body)
	if err != nil {
		return res, err
	}
	if len(tables) == 0 {
		logger.Warn("No tables found", "run", res.RunID)
		return res, errors.New(errors.ErrCodeNoTables, "no tables found in %s", doc.URL)
	}
	logger.Debug("Tables located", "count", len(tables))

	interp := Interpret(tables, logger)
	res.Interpretation = interp
	res.Stats.Tables = interp.Tables
	res.Stats.Rows = interp.Rows
	res.Stats.Entries = len(interp.Entries)
	res.Stats.Skipped = len(interp.Skips)
	res.Stats.InterpretTime = time.Since(start)
	observability.Pipeline().OnInterpretComplete(ctx, interp.Tables, len(interp.Entries), len(interp.Skips), res.Stats.InterpretTime)
	logger.Info("Interpreted rows", "entries", len(interp.Entries), "skipped", len(interp.Skips))

	if interp.Empty() {
		return res, errors.New(errors.ErrCodeNoData, "no valid data found in %s", doc.URL)
	}

	r.render(ctx, res)
	return res, nil
}

// ExecuteEntries renders previously extracted entries, skipping fetch,
// discovery and interpretation. source labels the result.
func (r *Runner) ExecuteEntries(ctx context.Context, source string, entries []interpret.Entry) (*Result, error) {
	interp := &interpret.Result{Entries: entries, Bounds: interpret.BoundsOf(entries)}
	res := &Result{
		RunID:          uuid.NewString(),
		URL:            source,
		Interpretation: interp,
	}
	res.Stats.Entries = len(entries)
	if interp.Empty() {
		return res, errors.New(errors.ErrCodeNoData, "no entries to render")
	}

	r.render(ctx, res)
	return res, nil
}

// render fills the grid, both renderings and the render statistics.
func (r *Runner) render(ctx context.Context, res *Result) {
	start := time.Now()
	g := Render(res.Interpretation)
	res.Grid = g
	res.Bordered = g.Bordered()
	res.Plain = g.Plain()
	res.Stats.Width = g.Width()
	res.Stats.Height = g.Height()
	res.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, g.Width(), g.Height(), res.Stats.RenderTime)
}

// Discover parses an HTML body into tables.
func Discover(body []byte) ([]interpret.Table, error) {
	return htmltable.Parse(bytes.NewReader(body))
}

// Interpret runs the row interpreter with logger.
func Interpret(tables []interpret.Table, logger *log.Logger) *interpret.Result {
	return interpret.Interpret(tables, interpret.Options{Logger: logger})
}

// Render builds the grid for an interpretation.
func Render(res *interpret.Result) *grid.Grid {
	return grid.New(res.Entries, res.Bounds)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
