package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/postboard/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it finishes.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Packed 45 notes (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports placement, cache, and HTTP events at debug level. Events
// go to the logger attached to the event's context when there is one.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PlacementHooks = logHooks{}
	_ observability.CacheHooks     = logHooks{}
	_ observability.HTTPHooks      = logHooks{}
)

func (h logHooks) log(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	if h.logger != nil {
		return h.logger
	}
	return log.Default()
}

func (h logHooks) OnPlaceStart(ctx context.Context, boardID string, page, textLength int) {
	h.log(ctx).Debug("placing note", "board", boardID, "page", page, "glyphs", textLength)
}

func (h logHooks) OnPlaceComplete(ctx context.Context, ev observability.PlaceEvent, d time.Duration, err error) {
	if err != nil {
		h.log(ctx).Debug("placement failed", "board", ev.BoardID, "page", ev.RequestedPage, "err", err)
		return
	}
	h.log(ctx).Debug("placement done",
		"board", ev.BoardID,
		"page", ev.Page,
		"stage", ev.Stage,
		"neighbors", ev.Neighbors,
		"duration", d)
}

func (h logHooks) OnOverflow(ctx context.Context, boardID string, from, to int) {
	h.log(ctx).Info("page full, moved to next page", "board", boardID, "from", from, "to", to)
}

func (h logHooks) OnPreviewRendered(ctx context.Context, boardID string, page, size int, d time.Duration) {
	h.log(ctx).Debug("preview rendered", "board", boardID, "page", page, "bytes", size, "duration", d)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.log(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnCacheError(ctx context.Context, keyType string, err error) {
	h.log(ctx).Warn("cache error", "type", keyType, "err", err)
}

func (h logHooks) OnRequest(ctx context.Context, requestID, method, path string) {
	h.log(ctx).Debug("request", "id", requestID, "method", method, "path", path)
}

func (h logHooks) OnResponse(ctx context.Context, requestID, method, path string, status int, d time.Duration) {
	h.log(ctx).Info("response",
		"id", requestID,
		"method", method,
		"path", path,
		"status", status,
		"duration", d.Round(time.Microsecond))
}
