package htmltable

import (
	"reflect"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

func texts(t interpret.Table) [][]string {
	out := make([][]string, len(t))
	for i, row := range t {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text()
		}
	}
	return out
}

func TestParse_SingleTable(t *testing.T) {
	doc := `<html><body>
<p>Intro text</p>
<table>
  <tr><th>x-coordinate</th><th>Character</th><th>y-coordinate</th></tr>
  <tr><td> 0 </td><td>█</td><td>0</td></tr>
  <tr><td>1</td><td><span>░</span></td><td>
    2
  </td></tr>
</table>
</body></html>`

	tables, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}

	want := [][]string{
		{"x-coordinate", "Character", "y-coordinate"},
		{"0", "█", "0"},
		{"1", "░", "2"},
	}
	if got := texts(tables[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %q, want %q", got, want)
	}
}

func TestParse_MultipleTablesInOrder(t *testing.T) {
	doc := `<table><tr><td>0</td><td>a</td><td>0</td></tr></table>
<div><table><tr><td>1</td><td>b</td><td>1</td></tr></table></div>`

	tables, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if got := tables[0][0][1].Text(); got != "a" {
		t.Errorf("first table char = %q, want a", got)
	}
	if got := tables[1][0][1].Text(); got != "b" {
		t.Errorf("second table char = %q, want b", got)
	}
}

func TestParse_NoTables(t *testing.T) {
	tables, err := ParseString(`<html><body><p>nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("got %d tables, want 0", len(tables))
	}
}

func TestParse_CellText(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"plain", "<td>A</td>", "A"},
		{"padded", "<td>  A  </td>", "A"},
		{"nested fragments joined", "<td><b> 1 </b> <i>2</i></td>", "12"},
		{"non breaking space", "<td>&nbsp;7&nbsp;</td>", "7"},
		{"comment ignored", "<td><!-- note -->3</td>", "3"},
		{"empty", "<td></td>", ""},
		{"header cell", "<th>x</th>", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := ParseString("<table><tr>" + tt.cell + "</tr></table>")
			if err != nil {
				t.Fatalf("ParseString() error: %v", err)
			}
			if len(tables) != 1 || len(tables[0]) != 1 || len(tables[0][0]) != 1 {
				t.Fatalf("unexpected table shape: %d tables", len(tables))
			}
			if got := tables[0][0][0].Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_FeedsInterpreter(t *testing.T) {
	doc := `<table>
<tr><td>x</td><td>char</td><td>y</td></tr>
<tr><td>0</td><td>A</td><td>0</td></tr>
<tr><td>1</td><td>B</td><td>0</td></tr>
<tr><td>0</td><td>C</td><td>1</td></tr>
<tr><td>short</td></tr>
</table>`

	tables, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	res := interpret.Interpret(tables, interpret.Options{})
	if len(res.Entries) != 3 {
		t.Errorf("got %d entries, want 3", len(res.Entries))
	}
	if res.Bounds != (interpret.Bounds{MaxX: 1, MaxY: 1}) {
		t.Errorf("Bounds = %+v, want {1 1}", res.Bounds)
	}
	if res.SkipCount(interpret.SkipShortRow) != 1 || res.SkipCount(interpret.SkipHeader) != 1 {
		t.Errorf("skips = %+v", res.Skips)
	}
}
