package grid

import "testing"

func TestFindInRadius(t *testing.T) {
	g := New(100, 100, 2, 1.5)
	g.Add(0, 10, 10)
	g.Add(1, 11, 11)
	g.Add(2, 80, 80)

	found := g.FindInRadius(10, 10, 3)
	if len(found) != 2 {
		t.Fatalf("expected 2 entries near (10,10), got %d: %v", len(found), found)
	}
	for _, e := range found {
		if e.Index == 2 {
			t.Errorf("far entry should not be found: %v", e)
		}
	}
}

func TestIsPositionValid(t *testing.T) {
	g := New(100, 100, 2, 1.5)
	g.Add(0, 50, 50)

	if g.IsPositionValid(50.5, 50, 5) {
		t.Errorf("position within minDistance of an occupant should be invalid")
	}
	if !g.IsPositionValid(70, 70, 5) {
		t.Errorf("position far from all occupants should be valid")
	}
}

func TestClearRemovesOccupants(t *testing.T) {
	g := New(50, 50, 1, 1)
	g.Add(0, 5, 5)
	g.Clear()
	if found := g.FindInRadius(5, 5, 10); len(found) != 0 {
		t.Errorf("expected empty grid after Clear, found %v", found)
	}
}

func TestComputeStats(t *testing.T) {
	g := New(100, 100, 2, 1.5)
	g.Add(0, 1, 1)
	g.Add(1, 1, 1)
	g.Add(2, 90, 90)
	stats := g.ComputeStats()
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.MaxPerCell < 2 {
		t.Errorf("MaxPerCell = %d, want at least 2 (two entries share a cell)", stats.MaxPerCell)
	}
}
