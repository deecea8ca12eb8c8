// Package pkg provides the core libraries for glyphgrid.
//
// # Overview
//
// Glyphgrid reads a published HTML document whose tables list characters
// with their (x, y) positions and draws those characters on a grid with y=0
// at the bottom. The pkg directory is organized into three areas:
//
//  1. Domain logic ([interpret], [grid], [htmltable])
//  2. Infrastructure ([fetch], [cache], [config], [httputil], [observability])
//  3. Orchestration ([pipeline]) and serialization ([io])
//
// # Architecture
//
// The data flow of a run:
//
//	Published document URL
//	         ↓
//	    [fetch] package (HTTP GET, optional cache and retries)
//	         ↓
//	    [htmltable] package (tables → rows → cell text)
//	         ↓
//	    [interpret] package (rows → entries + bounds, skipped rows recorded)
//	         ↓
//	    [grid] package (dense buffer → bordered and plain text)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(fetch.NewClient(fetch.Options{}), nil)
//	res, err := runner.Execute(ctx, pipeline.Options{URL: url})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Bordered)
//	fmt.Print(res.Plain)
//
// The stages also work alone, which keeps them testable without a network:
//
//	tables, _ := htmltable.ParseString(html)
//	res := interpret.Interpret(tables, interpret.Options{})
//	fmt.Print(grid.New(res.Entries, res.Bounds).Plain())
//
// # Error Handling
//
// Every stage returns coded errors from [errors]. A run that finds no tables
// or no usable rows ends with NO_TABLES or NO_DATA; callers use
// [errors.IsEmptyResult] to report these as informational outcomes.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include redis and mongo cache tests
//
// [interpret]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/interpret
// [grid]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/grid
// [htmltable]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/htmltable
// [fetch]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/fetch
// [cache]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/config
// [httputil]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/errors
// [errors.IsEmptyResult]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/errors#IsEmptyResult
package pkg
