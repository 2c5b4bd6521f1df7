package providers

import (
	"dropxhub/internal/structures"
	"strings"
)

// MetricsCacheProvider counts response cache hits and misses per catalog
// view. Keys look like "<revision>:<view>:<args>".
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(viewOf(key))
	} else {
		c.metrics.IncCacheMisses(viewOf(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) Clear() {
	c.inner.Clear()
}

// viewOf extracts the view segment of a cache key, "other" when absent.
func viewOf(key string) string {
	_, rest, found := strings.Cut(key, ":")
	if !found {
		return "other"
	}
	view, _, _ := strings.Cut(rest, ":")
	if view == "" {
		return "other"
	}
	return view
}

// NewInstrumentedCacheProvider wraps the response cache with per-view
// counters. A disabled cache is returned bare so it never reports misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
