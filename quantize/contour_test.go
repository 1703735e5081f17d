package quantize

import (
	"testing"

	"github.com/inkstroke/vectorize/geom"
)

func squareMask(w, h, x0, y0, x1, y1 int) []bool {
	mask := make([]bool, w*h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask[y*w+x] = true
		}
	}
	return mask
}

func TestTraceContoursSingleSquare(t *testing.T) {
	w, h := 10, 10
	mask := squareMask(w, h, 2, 2, 8, 8)

	contours := TraceContours(mask, w, h)
	if len(contours) != 1 {
		t.Fatalf("expected exactly one outer contour for a solid square, got %d", len(contours))
	}
	if contours[0].IsHole {
		t.Error("solid square's contour must not be marked as a hole")
	}
	if len(contours[0].Points) < 4 {
		t.Errorf("expected at least 4 boundary points, got %d", len(contours[0].Points))
	}
}

func TestTraceContoursDonutHasHole(t *testing.T) {
	w, h := 12, 12
	mask := squareMask(w, h, 2, 2, 10, 10)
	// punch a hole in the middle, strictly interior
	for y := 5; y < 7; y++ {
		for x := 5; x < 7; x++ {
			mask[y*w+x] = false
		}
	}

	contours := TraceContours(mask, w, h)
	var holes, outers int
	for _, c := range contours {
		if c.IsHole {
			holes++
		} else {
			outers++
		}
	}
	if outers != 1 {
		t.Errorf("expected 1 outer contour, got %d", outers)
	}
	if holes != 1 {
		t.Fatalf("expected 1 hole contour, got %d", holes)
	}
}

func TestTraceContoursTwoSeparateSquares(t *testing.T) {
	w, h := 20, 10
	mask := squareMask(w, h, 1, 1, 4, 4)
	second := squareMask(w, h, 10, 1, 14, 5)
	for i := range mask {
		if second[i] {
			mask[i] = true
		}
	}

	contours := TraceContours(mask, w, h)
	if len(contours) != 2 {
		t.Fatalf("expected 2 separate outer contours, got %d", len(contours))
	}
	for _, c := range contours {
		if c.IsHole {
			t.Error("neither square should be marked as a hole")
		}
	}
}

func TestTraceContoursEmptyMask(t *testing.T) {
	mask := make([]bool, 10*10)
	if contours := TraceContours(mask, 10, 10); len(contours) != 0 {
		t.Errorf("expected no contours for an all-background mask, got %d", len(contours))
	}
}

func TestTraceBoundaryStopsAtMaxTraceSteps(t *testing.T) {
	// A large square's perimeter walk (~4*299 points) comfortably exceeds
	// maxTraceSteps, exercising the safety bound rather than the
	// return-to-start stop.
	w, h := 310, 310
	mask := squareMask(w, h, 5, 5, 305, 305)

	pts := traceBoundary(mask, w, h, 5, 5, true)
	if len(pts) > maxTraceSteps {
		t.Errorf("expected traceBoundary to stop at maxTraceSteps=%d, got %d points", maxTraceSteps, len(pts))
	}
	if len(pts) < maxTraceSteps {
		t.Errorf("expected a perimeter this long to hit the maxTraceSteps bound, got only %d points", len(pts))
	}
}

func TestRepeatsFirst10DetectsExactRepeat(t *testing.T) {
	pts := make([]geom.Point, 25)
	for i := range pts {
		pts[i] = geom.Point{X: float64(i % 10), Y: 0}
	}
	if !repeatsFirst10(pts) {
		t.Error("expected the last 10 points to be recognized as a repeat of the first 10")
	}
}

func TestRepeatsFirst10RejectsDifferentTail(t *testing.T) {
	pts := make([]geom.Point, 25)
	for i := range pts {
		pts[i] = geom.Point{X: float64(i), Y: 0}
	}
	if repeatsFirst10(pts) {
		t.Error("expected a monotonically increasing tail to not match the first 10 points")
	}
}
