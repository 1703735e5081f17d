package dots

import (
	"testing"

	"github.com/inkstroke/vectorize/imgproc"
)

func uniformGradientImage(w, h int) (*imgproc.GradientAnalysis, []uint8) {
	pix := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0], pix[i*4+1], pix[i*4+2], pix[i*4+3] = 128, 128, 128, 255
	}
	ga := &imgproc.GradientAnalysis{
		Width: w, Height: h,
		Magnitude: make([]float32, w*h),
		Variance:  make([]float32, w*h),
	}
	for i := range ga.Magnitude {
		ga.Magnitude[i] = 362
	}
	return ga, pix
}

func TestGenerateWithoutBackgroundFilteringRespectsSpacing(t *testing.T) {
	w, h := 40, 40
	ga, pix := uniformGradientImage(w, h)
	cfg := DefaultConfig()

	placed := GenerateWithoutBackgroundFiltering(w, h, pix, ga, cfg)
	if len(placed) == 0 {
		t.Fatal("expected at least one dot placed")
	}
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			dist := dx*dx + dy*dy
			minDist := a.Radius * cfg.SpacingFactor
			if minDist > b.Radius*cfg.SpacingFactor {
				minDist = b.Radius * cfg.SpacingFactor
			}
			if dist < minDist*minDist-1e-6 {
				t.Errorf("dots %v and %v violate spacing: dist=%v minDist=%v", a, b, dist, minDist)
			}
		}
	}
}

func TestGenerateWithoutBackgroundFilteringDeterministic(t *testing.T) {
	w, h := 20, 20
	ga, pix := uniformGradientImage(w, h)
	cfg := DefaultConfig()

	a := GenerateWithoutBackgroundFiltering(w, h, pix, ga, cfg)
	b := GenerateWithoutBackgroundFiltering(w, h, pix, ga, cfg)
	if len(a) != len(b) {
		t.Fatalf("expected deterministic dot count, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("expected deterministic placement at index %d, got %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPlaceBreaksStrengthTiesByOriginalIndex(t *testing.T) {
	// Three equal-strength, equal-radius candidates far enough apart that
	// none is spatially rejected: place must keep them in their original
	// (index) order rather than an arbitrary one equal-key sort might pick.
	candidates := []candidate{
		{X: 5, Y: 5, Strength: 0.5, Radius: 1},
		{X: 20, Y: 5, Strength: 0.5, Radius: 1},
		{X: 35, Y: 5, Strength: 0.5, Radius: 1},
	}
	pix := make([]uint8, 40*10*4)
	cfg := DefaultConfig()

	dots := place(40, 10, pix, candidates, cfg)
	if len(dots) != 3 {
		t.Fatalf("expected all 3 well-spaced candidates to be placed, got %d", len(dots))
	}
	wantX := []float64{5.5, 20.5, 35.5}
	for i, want := range wantX {
		if dots[i].X != want {
			t.Errorf("dot %d: expected original-index order to put X=%v first, got %v", i, want, dots[i].X)
		}
	}
}

func TestGenerateWithoutBackgroundFilteringEmptyOnZeroGradient(t *testing.T) {
	w, h := 10, 10
	pix := make([]uint8, w*h*4)
	ga := &imgproc.GradientAnalysis{
		Width: w, Height: h,
		Magnitude: make([]float32, w*h),
		Variance:  make([]float32, w*h),
	}
	cfg := DefaultConfig()
	cfg.MinRadius = 0 // zero strength falls below DensityThreshold, so no candidate survives

	placed := GenerateWithoutBackgroundFiltering(w, h, pix, ga, cfg)
	if len(placed) != 0 {
		t.Errorf("expected no dots on a zero-gradient image, got %d", len(placed))
	}
	for _, d := range placed {
		if d.Radius != 0 {
			t.Errorf("expected zero radius on a constant-gray image, got %v", d.Radius)
		}
	}
}
