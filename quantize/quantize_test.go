package quantize

import (
	"testing"

	"github.com/inkstroke/vectorize/geom"
)

func TestQuantizeThreeColorBlockScene(t *testing.T) {
	w, h := 30, 30
	pix := make([]uint8, w*h*4)
	fillBlock(pix, w, 0, 0, 10, 30, 200, 20, 20)
	fillBlock(pix, w, 10, 0, 20, 30, 20, 200, 20)
	fillBlock(pix, w, 20, 0, 30, 30, 20, 20, 200)

	cfg := DefaultConfig()
	cfg.NumColors = 3
	cfg.MinRegionArea = 1

	layers := Quantize(w, h, pix, cfg)
	if len(layers) != 3 {
		t.Fatalf("expected 3 color layers, got %d", len(layers))
	}
	for _, l := range layers {
		if len(l.Contours) == 0 {
			t.Errorf("color %v produced no contours", l.Color)
		}
		if l.Curves != nil && len(l.Curves) != len(l.Contours) {
			t.Errorf("Curves must be parallel to Contours: %d vs %d", len(l.Curves), len(l.Contours))
		}
	}
}

func TestQuantizeFitCurvesDisabled(t *testing.T) {
	w, h := 10, 10
	pix := make([]uint8, w*h*4)
	fillBlock(pix, w, 0, 0, w, h, 100, 100, 100)

	cfg := DefaultConfig()
	cfg.NumColors = 1
	cfg.FitCurves = false

	layers := Quantize(w, h, pix, cfg)
	if len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(layers))
	}
	if layers[0].Curves != nil {
		t.Error("expected Curves to be nil when FitCurves is disabled")
	}
}

func TestFitSmoothSegmentsSquareProducesOneCurvePerEdge(t *testing.T) {
	square := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	curves := fitSmoothSegments(square, 0.35)
	if len(curves) != len(square) {
		t.Fatalf("expected one curve per edge, got %d curves for %d points", len(curves), len(square))
	}
	for i, c := range curves {
		if c.P0 != square[i] {
			t.Errorf("curve %d should start at vertex %d", i, i)
		}
	}
}

func TestFitSmoothSegmentsTooFewPoints(t *testing.T) {
	if curves := fitSmoothSegments([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0.35); curves != nil {
		t.Errorf("expected nil curves for fewer than 3 points, got %v", curves)
	}
}
