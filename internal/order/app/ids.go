package app

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const OrderIDPrefix = "ORD-"

// MonotonicIDs derives ids from the wall clock in milliseconds and bumps
// the value when the clock has not moved past the last issued id, so ids
// are strictly increasing. Seen carries that guarantee across processes
// sharing one order history.
type MonotonicIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewMonotonicIDs(now func() time.Time) *MonotonicIDs {
	if now == nil {
		now = time.Now
	}
	return &MonotonicIDs{now: now}
}

func (g *MonotonicIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return OrderIDPrefix + strconv.FormatInt(ms, 10)
}

// Seen records an id issued elsewhere so later ids sort after it. Ids
// without the numeric ORD- form are ignored.
func (g *MonotonicIDs) Seen(id string) {
	rest, ok := strings.CutPrefix(id, OrderIDPrefix)
	if !ok {
		return
	}
	ms, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if ms > g.last {
		g.last = ms
	}
}
