package interpret

import (
	"fmt"
	"strings"
)

// TextCell is a single table cell exposing its text content.
// Implementations return the text with surrounding whitespace removed.
type TextCell interface {
	Text() string
}

// Row is one table row in column order.
type Row []TextCell

// Table is a sequence of rows in document order.
type Table []Row

// StringCell adapts a plain string to [TextCell].
type StringCell string

// Text returns the string with leading and trailing whitespace trimmed.
func (s StringCell) Text() string { return strings.TrimSpace(string(s)) }

// StringTable builds a [Table] from rows of raw strings.
func StringTable(rows ...[]string) Table {
	t := make(Table, len(rows))
	for i, cells := range rows {
		row := make(Row, len(cells))
		for j, c := range cells {
			row[j] = StringCell(c)
		}
		t[i] = row
	}
	return t
}

// Entry is one parsed data point: the text to draw and where to draw it.
type Entry struct {
	Char string `json:"char"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Bounds holds the largest x and y coordinates accepted so far.
// The zero value describes a 1×1 grid.
type Bounds struct {
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width returns the number of grid columns the bounds describe.
func (b Bounds) Width() int { return b.MaxX + 1 }

// Height returns the number of grid rows the bounds describe.
func (b Bounds) Height() int { return b.MaxY + 1 }

// Contains reports whether (x, y) lies inside [0,MaxX] × [0,MaxY].
func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x <= b.MaxX && y >= 0 && y <= b.MaxY
}

// BoundsOf returns the bounds covering entries.
func BoundsOf(entries []Entry) Bounds {
	var b Bounds
	for _, e := range entries {
		b.include(e.X, e.Y)
	}
	return b
}

func (b *Bounds) include(x, y int) {
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
}

// SkipReason classifies why a row produced no entry.
type SkipReason int

const (
	// SkipShortRow marks a row with fewer than three cells.
	SkipShortRow SkipReason = iota + 1
	// SkipHeader marks a column-header row at the top of a table.
	SkipHeader
	// SkipBadCoordinate marks a row whose x or y is not an integer.
	SkipBadCoordinate
)

// String returns a short name for the reason.
func (r SkipReason) String() string {
	switch r {
	case SkipShortRow:
		return "short row"
	case SkipHeader:
		return "header"
	case SkipBadCoordinate:
		return "invalid coordinate"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reason by name.
func (r SkipReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason name written by MarshalText.
func (r *SkipReason) UnmarshalText(text []byte) error {
	for _, reason := range []SkipReason{SkipShortRow, SkipHeader, SkipBadCoordinate} {
		if reason.String() == string(text) {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown skip reason %q", text)
}

// Skip records a row that was passed over.
type Skip struct {
	Table  int        `json:"table"` // zero-based table index
	Row    int        `json:"row"`   // zero-based row index within the table
	Reason SkipReason `json:"reason"`
	Cells  []string   `json:"cells,omitempty"` // trimmed text of the first three cells, or of every cell of a short row
}

// Result is the outcome of interpreting a set of tables.
type Result struct {
	Entries []Entry `json:"entries"`
	Bounds  Bounds  `json:"bounds"`
	Skips   []Skip  `json:"skips,omitempty"`
	Tables  int     `json:"tables"`
	Rows    int     `json:"rows"`
}

// Empty reports whether no usable entry was found.
func (r *Result) Empty() bool { return r == nil || len(r.Entries) == 0 }

// SkipCount returns how many rows were skipped for reason.
func (r *Result) SkipCount(reason SkipReason) int {
	n := 0
	for _, s := range r.Skips {
		if s.Reason == reason {
			n++
		}
	}
	return n
}
