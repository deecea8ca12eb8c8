package grid

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

func TestNew_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		bounds        interpret.Bounds
		width, height int
	}{
		{"single cell", interpret.Bounds{}, 1, 1},
		{"wide", interpret.Bounds{MaxX: 9, MaxY: 0}, 10, 1},
		{"tall", interpret.Bounds{MaxX: 0, MaxY: 4}, 1, 5},
		{"negative treated as zero", interpret.Bounds{MaxX: -3, MaxY: -1}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil, tt.bounds)
			if g.Width() != tt.width || g.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", g.Width(), g.Height(), tt.width, tt.height)
			}
			for y := 0; y < g.Height(); y++ {
				for x := 0; x < g.Width(); x++ {
					if g.At(x, y) != Blank {
						t.Fatalf("At(%d, %d) = %q, want blank", x, y, g.At(x, y))
					}
				}
			}
		})
	}
}

func TestNew_PlacesEntries(t *testing.T) {
	entries := []interpret.Entry{{Char: "A", X: 0, Y: 0}, {Char: "B", X: 1, Y: 0}, {Char: "C", X: 0, Y: 1}}
	g := New(entries, interpret.Bounds{MaxX: 1, MaxY: 1})

	for _, e := range entries {
		if got := g.At(e.X, e.Y); got != e.Char {
			t.Errorf("At(%d, %d) = %q, want %q", e.X, e.Y, got, e.Char)
		}
	}
	if got := g.At(1, 1); got != Blank {
		t.Errorf("At(1, 1) = %q, want blank", got)
	}
}

func TestNew_LastWriteWins(t *testing.T) {
	entries := []interpret.Entry{{Char: "a", X: 2, Y: 1}, {Char: "b", X: 2, Y: 1}, {Char: "c", X: 0, Y: 0}, {Char: "d", X: 2, Y: 1}}
	g := New(entries, interpret.Bounds{MaxX: 2, MaxY: 1})
	if got := g.At(2, 1); got != "d" {
		t.Errorf("At(2, 1) = %q, want %q", got, "d")
	}
}

func TestNew_DropsOutOfBounds(t *testing.T) {
	entries := []interpret.Entry{{Char: "in", X: 0, Y: 0}, {Char: "neg", X: -1, Y: 0}, {Char: "far", X: 5, Y: 0}, {Char: "high", X: 0, Y: 9}}
	g := New(entries, interpret.Bounds{MaxX: 1, MaxY: 0})

	if got := g.Lines(); !reflect.DeepEqual(got, []string{"in "}) {
		t.Errorf("Lines() = %q, want %q", got, []string{"in "})
	}
}

func TestAt_OutsideGrid(t *testing.T) {
	g := New(nil, interpret.Bounds{MaxX: 1, MaxY: 1})
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := g.At(p[0], p[1]); got != "" {
			t.Errorf("At(%d, %d) = %q, want empty", p[0], p[1], got)
		}
	}
}

func TestLines_FlipsYAxis(t *testing.T) {
	entries := []interpret.Entry{{Char: "0", X: 0, Y: 0}, {Char: "1", X: 0, Y: 1}, {Char: "2", X: 0, Y: 2}}
	g := New(entries, interpret.Bounds{MaxX: 0, MaxY: 2})

	want := []string{"2", "1", "0"}
	if got := g.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	entries := []interpret.Entry{{Char: "A", X: 0, Y: 0}, {Char: "B", X: 1, Y: 0}, {Char: "C", X: 0, Y: 1}}
	bordered, plain := Render(entries, interpret.Bounds{MaxX: 1, MaxY: 1})

	wantBordered := "+--+\n" +
		"|C |\n" +
		"|AB|\n" +
		"+--+\n"
	if bordered != wantBordered {
		t.Errorf("bordered =\n%s\nwant\n%s", bordered, wantBordered)
	}

	wantPlain := "C \nAB\n"
	if plain != wantPlain {
		t.Errorf("plain = %q, want %q", plain, wantPlain)
	}
}

func TestBordered_BorderWidth(t *testing.T) {
	g := New(nil, interpret.Bounds{MaxX: 4, MaxY: 2})
	lines := strings.Split(strings.TrimSuffix(g.Bordered(), "\n"), "\n")

	if len(lines) != g.Height()+2 {
		t.Fatalf("got %d lines, want %d", len(lines), g.Height()+2)
	}
	if lines[0] != "+-----+" || lines[len(lines)-1] != "+-----+" {
		t.Errorf("borders = %q / %q, want %q", lines[0], lines[len(lines)-1], "+-----+")
	}
	for _, l := range lines[1 : len(lines)-1] {
		if l != "|     |" {
			t.Errorf("row = %q, want %q", l, "|     |")
		}
	}
}

func TestRender_MultiGlyphCellsVerbatim(t *testing.T) {
	entries := []interpret.Entry{{Char: "ab", X: 0, Y: 0}, {Char: "", X: 1, Y: 0}, {Char: "█", X: 2, Y: 0}}
	_, plain := Render(entries, interpret.Bounds{MaxX: 2, MaxY: 0})
	if plain != "ab█\n" {
		t.Errorf("plain = %q, want %q", plain, "ab█\n")
	}
}

func TestMisaligned(t *testing.T) {
	tests := []struct {
		name    string
		entries []interpret.Entry
		want    int
	}{
		{"single columns", []interpret.Entry{{Char: "A", X: 0, Y: 0}, {Char: "#", X: 1, Y: 1}}, 0},
		{"two letters", []interpret.Entry{{Char: "AB", X: 0, Y: 0}}, 1},
		{"wide glyph", []interpret.Entry{{Char: "中", X: 1, Y: 0}}, 1},
		{"empty text", []interpret.Entry{{Char: "", X: 0, Y: 0}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.entries, interpret.BoundsOf(tt.entries))
			if got := g.Misaligned(); got != tt.want {
				t.Errorf("Misaligned() = %d, want %d", got, tt.want)
			}
		})
	}
}
