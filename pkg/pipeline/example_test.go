package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

func ExampleRunner_ExecuteDocument() {
	doc := &fetch.Document{
		URL: "file://letter.html",
		Body: []byte(`<table>
			<tr><th>x</th><th>char</th><th>y</th></tr>
			<tr><td>0</td><td>#</td><td>0</td></tr>
			<tr><td>1</td><td>#</td><td>1</td></tr>
		</table>`),
	}

	res, err := pipeline.NewRunner(nil, nil).ExecuteDocument(context.Background(), doc, pipeline.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d entries, %dx%d\n", res.Stats.Entries, res.Stats.Width, res.Stats.Height)
	fmt.Print(res.Bordered)
	// Output:
	// 2 entries, 2x2
	// +--+
	// | #|
	// |# |
	// +--+
}
