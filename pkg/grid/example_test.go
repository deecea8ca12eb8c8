package grid_test

import (
	"fmt"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interpret"
)

func ExampleGrid_Bordered() {
	entries := []interpret.Entry{
		{Char: "A", X: 0, Y: 0},
		{Char: "B", X: 1, Y: 0},
		{Char: "C", X: 0, Y: 1},
	}
	g := grid.New(entries, interpret.Bounds{MaxX: 1, MaxY: 1})
	fmt.Print(g.Bordered())
	// Output:
	// +--+
	// |C |
	// |AB|
	// +--+
}

func ExampleGrid_Plain() {
	entries := []interpret.Entry{
		{Char: "#", X: 0, Y: 0},
		{Char: "#", X: 1, Y: 0},
		{Char: "#", X: 2, Y: 0},
		{Char: "#", X: 0, Y: 1},
		{Char: "#", X: 2, Y: 1},
	}
	fmt.Print(grid.New(entries, interpret.Bounds{MaxX: 2, MaxY: 1}).Plain())
	// Output:
	// # #
	// ###
}
