package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestGate(maxKeys int) (*RateGate, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := NewRateGate(time.Second, maxKeys)
	g.now = clock.Now
	return g, clock
}

func TestRateGateInterval(t *testing.T) {
	g, clock := newTestGate(10)

	if !g.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if g.Allow("10.0.0.1") {
		t.Error("second request inside interval should be rejected")
	}
	if !g.Allow("10.0.0.2") {
		t.Error("other clients are independent")
	}

	clock.Advance(500 * time.Millisecond)
	if g.Allow("10.0.0.1") {
		t.Error("request at 0.5s should be rejected")
	}
	clock.Advance(500 * time.Millisecond)
	if !g.Allow("10.0.0.1") {
		t.Error("request after a full interval should pass")
	}
}

func TestRateGateEvictsIdleKeysFirst(t *testing.T) {
	g, clock := newTestGate(3)

	g.Allow("a")
	g.Allow("b")
	clock.Advance(2 * time.Second)
	g.Allow("c")
	g.Allow("d")

	if got := g.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2 after idle eviction", got)
	}
	if g.Allow("c") {
		t.Error("active key c must survive eviction")
	}
}

func TestRateGateEvictsOldestWhenAllActive(t *testing.T) {
	g, clock := newTestGate(2)

	g.Allow("a")
	clock.Advance(100 * time.Millisecond)
	g.Allow("b")
	clock.Advance(100 * time.Millisecond)
	g.Allow("c")

	if got := g.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if g.Allow("b") {
		t.Error("b should still be tracked and throttled")
	}
}

func TestRateGateEvictionFollowsAdmissionOrder(t *testing.T) {
	g, clock := newTestGate(2)

	g.Allow("a")
	clock.Advance(100 * time.Millisecond)
	g.Allow("b")
	clock.Advance(950 * time.Millisecond)
	if !g.Allow("a") {
		t.Fatal("a should pass after a full interval")
	}
	g.Allow("c")

	if got := g.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if g.Allow("a") {
		t.Error("recently admitted a must survive eviction")
	}
	if !g.Allow("b") {
		t.Error("b was least recently admitted and should have been dropped")
	}
}

func TestRateGateRejectionDoesNotRefreshKey(t *testing.T) {
	g, clock := newTestGate(2)

	g.Allow("a")
	clock.Advance(100 * time.Millisecond)
	g.Allow("b")
	clock.Advance(400 * time.Millisecond)
	if g.Allow("a") {
		t.Fatal("a inside its interval should be rejected")
	}
	clock.Advance(100 * time.Millisecond)
	g.Allow("c")

	if g.Allow("b") {
		t.Error("b should still be tracked and throttled")
	}
	if !g.Allow("a") {
		t.Error("a should have been dropped as least recently admitted")
	}
}

func TestRateGateConcurrentSameKey(t *testing.T) {
	g, _ := newTestGate(100)

	var admitted int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Allow("shared") {
				atomic.AddInt32(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	if admitted != 1 {
		t.Errorf("admitted %d requests, want 1", admitted)
	}
}

func TestRateGateBoundedUnderLoad(t *testing.T) {
	g, _ := newTestGate(16)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g.Allow(fmt.Sprintf("client-%d", i))
		}(i)
	}
	wg.Wait()

	if got := g.Len(); got > 16 {
		t.Errorf("Len() = %d, exceeds bound 16", got)
	}
}
