package interpret

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// minCells is the number of leading cells a data row must provide.
const minCells = 3

// Options configures [Interpret].
type Options struct {
	// Logger receives per-row debug messages. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// Interpret extracts entries from tables in document order. All tables share
// one entry list and one bounds pair. The result is never nil; check
// [Result.Empty] to learn whether anything usable was found.
func Interpret(tables []Table, opts Options) *Result {
	logger := opts.logger()
	res := &Result{Tables: len(tables)}

	for ti, table := range tables {
		for ri, row := range table {
			res.Rows++
			entry, skip := interpretRow(row, ri == 0)
			if skip != nil {
				skip.Table, skip.Row = ti, ri
				res.Skips = append(res.Skips, *skip)
				logSkip(logger, skip)
				continue
			}
			res.Entries = append(res.Entries, entry)
			res.Bounds.include(entry.X, entry.Y)
			logger.Debug("Found data point", "char", entry.Char, "x", entry.X, "y", entry.Y)
		}
	}
	return res
}

// interpretRow applies the row rules to a single row. first marks the row at
// index 0 of its table, the only place a header is recognised.
func interpretRow(row Row, first bool) (Entry, *Skip) {
	if len(row) < minCells {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c.Text())
		}
		return Entry{}, &Skip{Reason: SkipShortRow, Cells: cells}
	}

	xText := strings.TrimSpace(row[0].Text())
	char := strings.TrimSpace(row[1].Text())
	yText := strings.TrimSpace(row[2].Text())
	cells := []string{xText, char, yText}

	if first && isHeader(xText, yText) {
		return Entry{}, &Skip{Reason: SkipHeader, Cells: cells}
	}

	x, errX := strconv.Atoi(xText)
	y, errY := strconv.Atoi(yText)
	if errX != nil || errY != nil {
		return Entry{}, &Skip{Reason: SkipBadCoordinate, Cells: cells}
	}
	return Entry{Char: char, X: x, Y: y}, nil
}

func isHeader(xText, yText string) bool {
	return strings.Contains(strings.ToLower(xText), "x") ||
		strings.Contains(strings.ToLower(yText), "y")
}

func logSkip(l *log.Logger, s *Skip) {
	switch s.Reason {
	case SkipShortRow:
		l.Debug("Skipping short row", "table", s.Table, "row", s.Row, "cells", len(s.Cells))
	case SkipHeader:
		l.Debug("Skipping header row", "table", s.Table)
	case SkipBadCoordinate:
		l.Debug("Skipping invalid coordinate row", "table", s.Table, "row", s.Row,
			"x", s.Cells[0], "char", s.Cells[1], "y", s.Cells[2])
	}
}
