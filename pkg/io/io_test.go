package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

func sampleResult() *interpret.Result {
	return interpret.Interpret([]interpret.Table{interpret.StringTable(
		[]string{"0", "A", "0"},
		[]string{"1", "B", "0"},
		[]string{"0", "C", "1"},
		[]string{"0", "Z", "0"},
	)}, interpret.Options{})
}

func TestExportImport(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "points.json")

	if err := ExportJSON(res, "https://example.com/doc", path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if got.Source != "https://example.com/doc" {
		t.Errorf("Source = %q", got.Source)
	}
	if !reflect.DeepEqual(got.Entries, res.Entries) {
		t.Errorf("Entries = %+v, want %+v", got.Entries, res.Entries)
	}
	if got.Bounds != res.Bounds {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, res.Bounds)
	}
}

func TestWriteJSONNil(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(nil, "", &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"points": []`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"points": [`, errors.ErrCodeInvalidInput},
		{"empty", `{"points": []}`, errors.ErrCodeNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRoundTripNegativeCoordinate(t *testing.T) {
	res := interpret.Interpret([]interpret.Table{interpret.StringTable(
		[]string{"0", "A", "0"},
		[]string{"-1", "Z", "0"},
	)}, interpret.Options{})
	if len(res.Entries) != 2 {
		t.Fatalf("interpreted %d entries, want 2", len(res.Entries))
	}

	var buf bytes.Buffer
	if err := WriteJSON(res, "", &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got.Entries, res.Entries) {
		t.Errorf("Entries = %+v, want %+v", got.Entries, res.Entries)
	}
	if got.Bounds != res.Bounds {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, res.Bounds)
	}
}

func TestFileErrorsAreCoded(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportJSON(filepath.Join(dir, "nope.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ImportJSON missing file: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	err = ExportJSON(sampleResult(), "", filepath.Join(dir, "missing", "points.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ExportJSON into missing dir: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
