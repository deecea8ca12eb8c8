// Package interpret turns rows of text cells into coordinate entries.
//
// # Overview
//
// A published glyph table lists one data point per row in the column order
// x, character, y:
//
//	| x | char | y |
//	| 0 |  A   | 0 |
//	| 1 |  B   | 0 |
//	| 0 |  C   | 1 |
//
// [Interpret] walks every table in document order and produces a flat list of
// [Entry] values together with the [Bounds] (largest x and y seen). Rows that
// cannot be used are recorded as [Skip] values instead of failing the run:
//
//   - rows with fewer than three cells ([SkipShortRow])
//   - the first row of a table when it looks like a column header ([SkipHeader])
//   - rows whose x or y cell is not a base-10 integer ([SkipBadCoordinate])
//
// Entries keep source order. Duplicate coordinates are not merged here; the
// renderer applies them in order so the last one wins.
//
// # Cells
//
// The interpreter only needs the text of a cell, so it consumes the
// [TextCell] interface rather than any markup library's node type. The
// htmltable package adapts parsed HTML to it and [StringCell] adapts plain
// strings for tests and in-memory sources.
package interpret
