package server

import (
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/traffic"
)

// windowCache memoises scatters per snapshot and minute
type windowCache struct {
	c gcache.Cache
}

func newWindowCache(size int, ttl time.Duration) *windowCache {
	if size <= 0 {
		size = 1
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &windowCache{c: b.Build()}
}

func memoKey(snap *dataset.Snapshot, minute int) string {
	return fmt.Sprintf("%s|%d", snap.ID, minute)
}

func (wc *windowCache) scatter(snap *dataset.Snapshot, minute int) traffic.Scatter {
	key := memoKey(snap, minute)
	if v, err := wc.c.Get(key); err == nil {
		if sc, ok := v.(traffic.Scatter); ok {
			windowCacheTotal.WithLabelValues("hit").Inc()
			return sc
		}
	}
	windowCacheTotal.WithLabelValues("miss").Inc()
	sc := snap.Scatter(minute)
	_ = wc.c.Set(key, sc)
	return sc
}

func (wc *windowCache) purge() { wc.c.Purge() }

func (wc *windowCache) len() int { return wc.c.Len(true) }
