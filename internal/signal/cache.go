package signal

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Reader is the read side of the cache used by the scorer.
type Reader interface {
	Get(ticker string, source Source) (Snapshot, bool)
}

// Stats summarizes cache contents at a point in time.
type Stats struct {
	Entries  int                   `json:"entries"`
	Fresh    int                   `json:"fresh"`
	Stale    int                   `json:"stale"`
	BySource map[Source]SourceStat `json:"by_source"`
}

// SourceStat is the per-source part of Stats.
type SourceStat struct {
	Fresh int `json:"fresh"`
	Stale int `json:"stale"`
}

// Cache holds the latest snapshot for every (ticker, source) pair.
// Entries never expire from the store; staleness is computed on read so
// degraded callers can still use old data.
type Cache struct {
	store *gocache.Cache
	now   func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty snapshot cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		store: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(ticker string, source Source) string {
	return strings.ToUpper(strings.TrimSpace(ticker)) + "|" + string(source)
}

// Get returns the snapshot for the pair, flagged stale when past its TTL.
func (c *Cache) Get(ticker string, source Source) (Snapshot, bool) {
	v, ok := c.store.Get(cacheKey(ticker, source))
	if !ok {
		return Snapshot{}, false
	}
	snap := v.(Snapshot)
	snap.Stale = !snap.FreshAt(c.now())
	return snap, true
}

// Put replaces the snapshot for the pair with a new one fetched now.
func (c *Cache) Put(ticker string, source Source, payload Payload, ttl time.Duration) error {
	if payload == nil {
		return fmt.Errorf("%w: nil payload for %s", ErrSourceMismatch, source)
	}
	if payload.Source() != source {
		return fmt.Errorf("%w: %s payload stored as %s", ErrSourceMismatch, payload.Source(), source)
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	c.store.Set(cacheKey(ticker, source), Snapshot{
		Ticker:    ticker,
		Source:    source,
		Payload:   payload,
		FetchedAt: c.now(),
		TTL:       ttl,
	}, gocache.NoExpiration)
	return nil
}

// Len returns the number of tracked pairs.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Stats counts fresh and stale entries.
func (c *Cache) Stats() Stats {
	now := c.now()
	stats := Stats{BySource: make(map[Source]SourceStat)}
	for _, item := range c.store.Items() {
		snap, ok := item.Object.(Snapshot)
		if !ok {
			continue
		}
		stats.Entries++
		st := stats.BySource[snap.Source]
		if snap.FreshAt(now) {
			stats.Fresh++
			st.Fresh++
		} else {
			stats.Stale++
			st.Stale++
		}
		stats.BySource[snap.Source] = st
	}
	return stats
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.store.Flush()
}
