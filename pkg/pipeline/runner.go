package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/postboard/pkg/cache"
	"github.com/matzehuels/postboard/pkg/observability"
)

// Runner executes placements with caching.
//
// The Runner holds no board state; its only fields are the cache, the keyer,
// and the logger. Multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching, and a nil logger means [log.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Invalidate drops every cached entry of one board page. It returns 0 when
// the cache cannot delete by prefix.
func (r *Runner) Invalidate(ctx context.Context, boardID string, page int) (int, error) {
	pd, ok := r.Cache.(cache.PrefixDeleter)
	if !ok {
		return 0, nil
	}
	n, err := pd.DeletePrefix(ctx, r.Keyer.PagePrefix(boardID, page))
	if err != nil {
		return n, fmt.Errorf("invalidate %s page %d: %w", boardID, page, err)
	}
	r.Logger.Debug("invalidated cache", "board", boardID, "page", page, "entries", n)
	return n, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads and decodes a cached value. Failures count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if raw, ok := v.(*[]byte); ok {
		*raw = data
	} else if err := json.Unmarshal(data, v); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store writes a value to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
