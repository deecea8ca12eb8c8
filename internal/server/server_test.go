package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

const upstreamDoc = `<html><body><table>
<tr><td>x</td><td>char</td><td>y</td></tr>
<tr><td>0</td><td>A</td><td>0</td></tr>
<tr><td>1</td><td>B</td><td>0</td></tr>
<tr><td>0</td><td>C</td><td>1</td></tr>
</table></body></html>`

// newUpstream serves documents by path: /doc has a table, /empty has none,
// anything else is a 404.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc":
			_, _ = w.Write([]byte(upstreamDoc))
		case "/empty":
			_, _ = w.Write([]byte("<html><body><p>no tables</p></body></html>"))
		case "/header-only":
			_, _ = w.Write([]byte("<table><tr><td>x</td><td>c</td><td>y</td></tr></table>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(defaultURL string) *Server {
	runner := pipeline.NewRunner(fetch.NewClient(fetch.Options{Timeout: 5 * time.Second}), nil)
	return New(runner, Options{DefaultURL: defaultURL})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func renderPath(upstream, format string) string {
	q := url.Values{"url": {upstream}}
	if format != "" {
		q.Set("format", format)
	}
	return "/render?" + q.Encode()
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(""), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestRenderText(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer("")

	tests := []struct {
		format string
		want   string
	}{
		{"", "+--+\n|C |\n|AB|\n+--+\n"},
		{"bordered", "+--+\n|C |\n|AB|\n+--+\n"},
		{"plain", "C \nAB\n"},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			rec := get(t, s, renderPath(up.URL+"/doc", tt.format))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
			if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
				t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
			}
			if rec.Header().Get(runIDHeader) == "" {
				t.Error("missing run ID header")
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	up := newUpstream(t)
	rec := get(t, newTestServer(""), renderPath(up.URL+"/doc", "json"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var res pipeline.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.RunID != rec.Header().Get(runIDHeader) {
		t.Errorf("run_id %q does not match header %q", res.RunID, rec.Header().Get(runIDHeader))
	}
	if res.Interpretation == nil || len(res.Interpretation.Entries) != 3 {
		t.Fatalf("interpretation = %+v", res.Interpretation)
	}
	if b := res.Interpretation.Bounds; b.MaxX != 1 || b.MaxY != 1 {
		t.Errorf("bounds = %+v, want 1,1", b)
	}
	if res.Plain != "C \nAB\n" {
		t.Errorf("plain = %q", res.Plain)
	}
	if res.Stats.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Stats.Skipped)
	}
}

func TestRenderDefaultURL(t *testing.T) {
	up := newUpstream(t)
	rec := get(t, newTestServer(up.URL+"/doc"), "/render?format=plain")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestRenderErrors(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer("")

	tests := []struct {
		name   string
		target string
		status int
		code   errors.Code
	}{
		{"missing url", "/render", http.StatusBadRequest, errors.ErrCodeInvalidURL},
		{"bad scheme", renderPath("ftp://example.com/doc", ""), http.StatusBadRequest, errors.ErrCodeInvalidURL},
		{"bad format", renderPath(up.URL+"/doc", "svg"), http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"no tables", renderPath(up.URL+"/empty", ""), http.StatusUnprocessableEntity, errors.ErrCodeNoTables},
		{"no data", renderPath(up.URL+"/header-only", ""), http.StatusUnprocessableEntity, errors.ErrCodeNoData},
		{"upstream 404", renderPath(up.URL+"/missing", ""), http.StatusBadGateway, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidURL, http.StatusBadRequest},
		{errors.ErrCodeNoData, http.StatusUnprocessableEntity},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.code); got != tt.want {
			t.Errorf("StatusCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRunShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer("").Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
