package services

import (
	"container/list"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateGate admits at most one request per key per interval. The key set is
// bounded: once full, keys idle for a whole interval are dropped first, then
// the least recently admitted one.
type RateGate struct {
	mu       sync.Mutex
	interval time.Duration
	maxKeys  int
	entries  map[string]*list.Element
	// order holds *gateEntry, most recently admitted at the front.
	order *list.List
	now   func() time.Time
}

type gateEntry struct {
	key     string
	limiter *rate.Limiter
	last    time.Time
}

func NewRateGate(interval time.Duration, maxKeys int) *RateGate {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &RateGate{
		interval: interval,
		maxKeys:  maxKeys,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Allow reports whether key may proceed now. Rejected calls do not push the
// next admission further out.
func (g *RateGate) Allow(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	el, ok := g.entries[key]
	if !ok {
		if len(g.entries) >= g.maxKeys {
			g.evict(now)
		}
		el = g.order.PushFront(&gateEntry{key: key, limiter: rate.NewLimiter(rate.Every(g.interval), 1)})
		g.entries[key] = el
	}
	e := el.Value.(*gateEntry)
	if !e.limiter.AllowN(now, 1) {
		return false
	}
	e.last = now
	g.order.MoveToFront(el)
	return true
}

// Len is the number of tracked keys.
func (g *RateGate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// evict must be called with mu held. It walks from the back only while
// entries are idle, so each key is removed at most once.
func (g *RateGate) evict(now time.Time) {
	for back := g.order.Back(); back != nil; back = g.order.Back() {
		if now.Sub(back.Value.(*gateEntry).last) < g.interval {
			break
		}
		g.remove(back)
	}
	if len(g.entries) >= g.maxKeys {
		g.remove(g.order.Back())
	}
}

func (g *RateGate) remove(el *list.Element) {
	delete(g.entries, el.Value.(*gateEntry).key)
	g.order.Remove(el)
}
