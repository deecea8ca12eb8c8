// Package pipeline runs the fetch → discover → interpret → render sequence.
//
// This package is the single place where the stages are wired together, so
// the CLI and the HTTP server behave identically.
//
// # Stages
//
//  1. Fetch: retrieve the document (see pkg/fetch)
//  2. Discover: locate tables and their cells (see pkg/htmltable)
//  3. Interpret: turn rows into coordinate entries (see pkg/interpret)
//  4. Render: build the grid and its two renderings (see pkg/grid)
//
// # Usage
//
//	runner := pipeline.NewRunner(fetch.NewClient(fetch.Options{}), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{URL: url})
//	switch {
//	case errors.IsEmptyResult(err):
//	    // nothing to render; result still carries the statistics
//	case err != nil:
//	    return err
//	}
//	fmt.Print(result.Bordered)
//
// A run that finds no tables or no usable rows returns a NO_TABLES or NO_DATA
// error together with a partial [Result].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

// Format names for the renderings a caller may ask for.
const (
	FormatBordered = "bordered"
	FormatPlain    = "plain"
	FormatJSON     = "json"
)

// Formats lists the valid format names.
var Formats = []string{FormatBordered, FormatPlain, FormatJSON}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats)
}

// Options configures one pipeline run.
type Options struct {
	// URL of the document to fetch. Required by [Runner.Execute].
	URL string `json:"url"`

	// Refresh bypasses the document cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies the run in logs and API responses.
	RunID string `json:"run_id"`

	// URL is the normalized document URL.
	URL string `json:"url"`

	// Interpretation holds entries, bounds and skipped rows.
	Interpretation *interpret.Result `json:"interpretation,omitempty"`

	// Grid is the dense buffer. Nil when nothing was rendered.
	Grid *grid.Grid `json:"-"`

	// Bordered and Plain are the two renderings.
	Bordered string `json:"bordered,omitempty"`
	Plain    string `json:"plain,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Rendered reports whether the run produced a grid.
func (r *Result) Rendered() bool { return r != nil && r.Grid != nil }

// Stats contains pipeline execution statistics.
type Stats struct {
	Bytes         int           `json:"bytes"`
	Tables        int           `json:"tables"`
	Rows          int           `json:"rows"`
	Entries       int           `json:"entries"`
	Skipped       int           `json:"skipped"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	FetchTime     time.Duration `json:"fetch_ns"`
	InterpretTime time.Duration `json:"interpret_ns"`
	RenderTime    time.Duration `json:"render_ns"`
}

// CacheInfo tracks whether the document came from the cache.
type CacheInfo struct {
	DocumentHit bool `json:"document_hit"`
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
