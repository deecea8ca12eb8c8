// Package grid renders coordinate entries as a dense character grid.
//
// The grid uses a mathematical orientation: y=0 is the bottom row and y grows
// upwards, so renderings emit rows from the largest y down to zero. Each cell
// holds the entry text verbatim. Cells default to a single space.
//
//	g := grid.New(res.Entries, res.Bounds)
//	fmt.Print(g.Bordered())
//	fmt.Print(g.Plain())
package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

// Blank is the content of a cell no entry wrote to.
const Blank = " "

// Border characters used by [Grid.Bordered].
const (
	BorderCorner     = "+"
	BorderHorizontal = "-"
	BorderVertical   = "|"
)

// Grid is a dense (height × width) buffer of cell strings indexed [y][x].
// A Grid is built once by [New] and is read-only afterwards.
type Grid struct {
	cells  [][]string
	width  int
	height int
}

// New allocates a grid covering bounds and writes entries in order.
// Entries outside [0,MaxX] × [0,MaxY] are dropped. When several entries share
// a coordinate the last one wins. Negative bounds are treated as zero.
func New(entries []interpret.Entry, bounds interpret.Bounds) *Grid {
	bounds.MaxX = max(bounds.MaxX, 0)
	bounds.MaxY = max(bounds.MaxY, 0)

	g := &Grid{width: bounds.Width(), height: bounds.Height()}
	g.cells = make([][]string, g.height)
	for y := range g.cells {
		row := make([]string, g.width)
		for x := range row {
			row[x] = Blank
		}
		g.cells[y] = row
	}

	for _, e := range entries {
		if bounds.Contains(e.X, e.Y) {
			g.cells[e.Y][e.X] = e.Char
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the cell at (x, y), or "" when the point is outside the grid.
func (g *Grid) At(x, y int) string {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return ""
	}
	return g.cells[y][x]
}

// Lines returns the undecorated rows from top (y = Height-1) to bottom (y = 0).
func (g *Grid) Lines() []string {
	lines := make([]string, 0, g.height)
	for y := g.height - 1; y >= 0; y-- {
		lines = append(lines, strings.Join(g.cells[y], ""))
	}
	return lines
}

// Plain renders the grid without decoration, one newline-terminated line per row.
func (g *Grid) Plain() string {
	var b strings.Builder
	for _, line := range g.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Bordered renders the grid framed by a "+---+" border and "|" row edges.
func (g *Grid) Bordered() string {
	edge := BorderCorner + strings.Repeat(BorderHorizontal, g.width) + BorderCorner + "\n"

	var b strings.Builder
	b.WriteString(edge)
	for _, line := range g.Lines() {
		b.WriteString(BorderVertical)
		b.WriteString(line)
		b.WriteString(BorderVertical)
		b.WriteByte('\n')
	}
	b.WriteString(edge)
	return b.String()
}

// CellWidth returns the number of terminal columns s occupies.
func CellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Misaligned returns the number of cells whose content is not exactly one
// terminal column wide. Such cells shift the rest of their row.
func (g *Grid) Misaligned() int {
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if CellWidth(cell) != 1 {
				n++
			}
		}
	}
	return n
}

// Render builds a grid and returns both renderings.
func Render(entries []interpret.Entry, bounds interpret.Bounds) (bordered, plain string) {
	g := New(entries, bounds)
	return g.Bordered(), g.Plain()
}
