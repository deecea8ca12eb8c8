package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

// Points is a decoded points file.
type Points struct {
	Source  string
	Entries []interpret.Entry
	Bounds  interpret.Bounds
}

// ReadJSON decodes a points file from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed and a
// NO_DATA error if the file holds no points. Negative coordinates are kept
// as written; rendering drops them like any out-of-bounds entry. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*Points, error) {
	var data pointsFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode points")
	}

	entries := make([]interpret.Entry, len(data.Points))
	for i, p := range data.Points {
		entries[i] = interpret.Entry{Char: p.Char, X: p.X, Y: p.Y}
	}
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "points file has no points")
	}

	return &Points{
		Source:  data.Source,
		Entries: entries,
		Bounds:  interpret.BoundsOf(entries),
	}, nil
}

// ImportJSON reads a points file at path.
func ImportJSON(path string) (*Points, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open points file %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
