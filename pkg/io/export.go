package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

type pointsFile struct {
	Source string  `json:"source,omitempty"`
	Points []point `json:"points"`
}

type point struct {
	Char string `json:"char"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// WriteJSON encodes the entries of res as a points file and writes it to w.
// source records where the entries came from and may be empty.
func WriteJSON(res *interpret.Result, source string, w io.Writer) error {
	out := pointsFile{Source: source, Points: []point{}}
	if res != nil {
		out.Points = make([]point, len(res.Entries))
		for i, e := range res.Entries {
			out.Points[i] = point{Char: e.Char, X: e.X, Y: e.Y}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a points file at path.
func ExportJSON(res *interpret.Result, source, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create points file %s", path)
	}
	if err := WriteJSON(res, source, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
