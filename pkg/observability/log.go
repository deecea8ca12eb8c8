package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements all
// three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger, prefixed with "obs".
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) OnFetchStart(_ context.Context, url string) {
	h.logger.Debug("fetch start", "url", url)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, url string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "url", url, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("fetch done", "url", url, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnInterpretComplete(_ context.Context, tables, entries, skipped int, d time.Duration) {
	h.logger.Debug("interpret done", "tables", tables, "entries", entries, "skipped", skipped, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderComplete(_ context.Context, width, height int, d time.Duration) {
	h.logger.Debug("render done", "width", width, "height", height, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
