package geom

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRDPSimplifyProperties exercises RDPSimplify against randomly
// generated polylines, checking the invariants that must hold for any
// input rather than a handful of fixed cases: the result never grows,
// the endpoints always survive, and every kept point is one of the
// original points (no point is moved or invented).
func TestRDPSimplifyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, 64).Draw(t, "n")
		epsilon := rapid.Float64Range(0.01, 10).Draw(t, "epsilon")

		points := make([]Point, n)
		for i := range points {
			points[i] = Point{
				X: rapid.Float64Range(-1000, 1000).Draw(t, "x"),
				Y: rapid.Float64Range(-1000, 1000).Draw(t, "y"),
			}
		}

		simplified := RDPSimplify(points, epsilon)

		if len(simplified) > len(points) {
			t.Fatalf("simplification must not increase point count: %d -> %d", len(points), len(simplified))
		}
		if len(simplified) == 0 {
			t.Fatal("simplification of a non-empty input must not return an empty slice")
		}
		if simplified[0] != points[0] {
			t.Errorf("first point must be preserved: got %v want %v", simplified[0], points[0])
		}
		if simplified[len(simplified)-1] != points[len(points)-1] {
			t.Errorf("last point must be preserved: got %v want %v", simplified[len(simplified)-1], points[len(points)-1])
		}

		for _, sp := range simplified {
			found := false
			for _, p := range points {
				if sp == p {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("simplified point %v is not among the original points", sp)
			}
		}
	})
}

// TestRDPSimplifyIdempotentOnItsOwnOutput checks that re-simplifying an
// already-simplified polyline at the same epsilon changes nothing
// further: every deviation in the simplified path is already within
// epsilon of a straight segment between its own neighbors.
func TestRDPSimplifyIdempotentOnItsOwnOutput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, 40).Draw(t, "n")
		epsilon := rapid.Float64Range(0.5, 5).Draw(t, "epsilon")

		points := make([]Point, n)
		for i := range points {
			points[i] = Point{
				X: rapid.Float64Range(-500, 500).Draw(t, "x"),
				Y: rapid.Float64Range(-500, 500).Draw(t, "y"),
			}
		}

		once := RDPSimplify(points, epsilon)
		twice := RDPSimplify(once, epsilon)

		if len(once) != len(twice) {
			t.Fatalf("re-simplifying a simplified path should be a no-op, got %d -> %d points", len(once), len(twice))
		}
	})
}
