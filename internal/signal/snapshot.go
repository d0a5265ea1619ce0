package signal

import "time"

// Snapshot is one provider's view of a ticker at a point in time.
type Snapshot struct {
	Ticker    string        `json:"ticker"`
	Source    Source        `json:"source"`
	Payload   Payload       `json:"payload"`
	FetchedAt time.Time     `json:"fetched_at"`
	TTL       time.Duration `json:"ttl"`
	// Stale is set by the cache on read when the snapshot has outlived its TTL.
	Stale bool `json:"stale"`
}

// FreshAt reports whether the snapshot is still within its TTL at now.
func (s Snapshot) FreshAt(now time.Time) bool {
	return now.Sub(s.FetchedAt) <= s.TTL
}

// Age is the elapsed time since the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
