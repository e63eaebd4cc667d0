package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wopp/pkg/observability"
)

// logHooks reports cache, HTTP and file events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFilesLocated(_ context.Context, dir, pattern string, count int) {
	h.logger.Debug("files located", "dir", dir, "pattern", pattern, "count", count)
}

func (h logHooks) OnFileUpdated(_ context.Context, path, action string, changed bool, err error) {
	if err != nil {
		h.logger.Debug("file update failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("file updated", "path", path, "action", action, "changed", changed)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(context.Context, string, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

// registerHooks routes observability events to the CLI logger.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetRequirementsHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
