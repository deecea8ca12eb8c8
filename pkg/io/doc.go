// Package io provides JSON import and export for interpreted data points.
//
// # Overview
//
// A points file stores the entries extracted from a document so a grid can be
// re-rendered later without fetching or parsing HTML again:
//
//	{
//	  "source": "https://docs.google.com/document/d/e/.../pub",
//	  "points": [
//	    {"char": "█", "x": 0, "y": 0},
//	    {"char": "▀", "x": 1, "y": 1}
//	  ]
//	}
//
// Points keep document order, so re-rendering reproduces last-write-wins
// resolution of duplicate coordinates. Negative coordinates survive the round
// trip so a re-render skips exactly the entries the first render skipped.
//
// # Usage
//
//	if err := io.ExportJSON(res.Interpretation, res.URL, "points.json"); err != nil {
//	    return err
//	}
//
//	doc, err := io.ImportJSON("points.json")
//	g := grid.New(doc.Entries, doc.Bounds)
package io
