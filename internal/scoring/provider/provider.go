// Package provider adapts the vendor repositories to signal.Provider so the
// refresh workers can fill the signal cache.
package provider

import (
	"time"

	"insider-conviction/internal/signal"
)

// feed implements the Source and TTL halves of signal.Provider.
type feed struct {
	source signal.Source
	ttl    time.Duration
}

func (f feed) Source() signal.Source { return f.source }

func (f feed) TTL() time.Duration { return f.ttl }
