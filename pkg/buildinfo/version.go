// Package buildinfo holds the glyphgrid release identifiers stamped in at
// link time:
//
//	go build -ldflags "-X github.com/matzehuels/glyphgrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/glyphgrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/glyphgrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/glyphgrid
//
// Unstamped builds report "dev". The version shows up in three places: the
// --version output, the /healthz response and the User-Agent of document
// requests.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent is the User-Agent header sent when fetching documents.
func UserAgent() string {
	return "glyphgrid/" + Version
}

// Template is the cobra version template used by --version.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
