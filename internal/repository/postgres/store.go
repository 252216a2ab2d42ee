package postgres

import (
	"sync"
	"time"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// storeClock hands out creation timestamps that never go backwards, even when the
// wall clock is stepped back. PostgreSQL keeps microseconds, so values are truncated
// to what a later read returns.
type storeClock struct {
	mu     sync.Mutex
	source func() time.Time
	last   time.Time
}

func newStoreClock(source func() time.Time) *storeClock {
	return &storeClock{source: source}
}

func (c *storeClock) Now() time.Time {
	now := c.source().UTC().Truncate(time.Microsecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now
}

// storeNow is the creation clock shared by every repository in the process.
var storeNow = newStoreClock(time.Now).Now
