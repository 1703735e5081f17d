package dotpool

import "testing"

type point struct{ X, Y float64 }

func TestAcquireReusesReleased(t *testing.T) {
	p := New[point](2)
	a := p.Acquire()
	a.X = 42
	p.Release(a)

	b := p.Acquire()
	if b.X != 0 {
		t.Errorf("reused entry must be zeroed, got X=%v", b.X)
	}
	stats := p.Stats()
	if stats.Hits < 1 {
		t.Errorf("expected at least one hit, got %+v", stats)
	}
}

func TestAcquireBeyondCapacityFallsBackToAllocation(t *testing.T) {
	p := New[point](1)
	a := p.Acquire()
	b := p.Acquire()
	if a == nil || b == nil {
		t.Fatal("Acquire must never return nil")
	}
	stats := p.Stats()
	if stats.Misses < 1 {
		t.Errorf("expected at least one miss beyond soft capacity, got %+v", stats)
	}
}

func TestReleaseBeyondCapacityDropped(t *testing.T) {
	p := New[point](1)
	a := p.Acquire()
	b := &point{}
	p.Release(a)
	p.Release(b) // pool already has 1 free slot at capacity 1; should be dropped

	c := p.Acquire()
	d := p.Acquire()
	if c == nil || d == nil {
		t.Fatal("Acquire must never return nil")
	}
}

func TestStatsHitRatio(t *testing.T) {
	p := New[point](0)
	p.Acquire()
	p.Acquire()
	stats := p.Stats()
	if stats.HitRatio != 0 {
		t.Errorf("zero-capacity pool should have hit ratio 0, got %v", stats.HitRatio)
	}
}
