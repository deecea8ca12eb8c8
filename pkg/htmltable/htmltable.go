// Package htmltable discovers tables in an HTML document and exposes their
// cells as [interpret.TextCell] values.
//
// Every <table> element is returned in document order. Each table lists every
// <tr> below it and each row lists every <td> or <th> below the row. Nested
// tables therefore contribute their rows both to themselves and to the
// enclosing table, matching a plain descendant search.
package htmltable

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

const (
	tableSelector = "table"
	rowSelector   = "tr"
	cellSelector  = "td, th"
)

// Cell is the text content of one <td> or <th> element.
type Cell struct {
	text string
}

// Text returns the cell text. Each text fragment below the element is trimmed
// and the fragments are joined without separators.
func (c Cell) Text() string { return c.text }

// Parse reads an HTML document from r and returns its tables.
// A document without tables yields an empty slice and no error.
func Parse(r io.Reader) ([]interpret.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "cannot parse HTML document")
	}
	return Tables(doc.Selection), nil
}

// ParseString is a convenience wrapper around [Parse].
func ParseString(s string) ([]interpret.Table, error) {
	return Parse(strings.NewReader(s))
}

// Tables returns every table found below root.
func Tables(root *goquery.Selection) []interpret.Table {
	var tables []interpret.Table
	root.Find(tableSelector).Each(func(_ int, table *goquery.Selection) {
		tables = append(tables, tableRows(table))
	})
	return tables
}

func tableRows(table *goquery.Selection) interpret.Table {
	var rows interpret.Table
	table.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		var row interpret.Row
		tr.Find(cellSelector).Each(func(_ int, cell *goquery.Selection) {
			row = append(row, Cell{text: selectionText(cell)})
		})
		rows = append(rows, row)
	})
	return rows
}

func selectionText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
