package imgproc

import (
	"math"
	"testing"
)

func flatEtfField(w, h int) *EtfField {
	field := NewEtfField(w, h)
	for i := range field.Tx {
		field.Tx[i], field.Ty[i] = 1, 0
		field.Coherency[i] = 1
	}
	return field
}

func TestGaussianKernel1DSumsToOne(t *testing.T) {
	kernel := gaussianKernel1D(4, 1.5)
	var sum float32
	for _, w := range kernel {
		sum += w
	}
	if math.Abs(float64(sum-1)) > 1e-5 {
		t.Errorf("gaussian kernel should sum to 1, got %v", sum)
	}
	if len(kernel) != 9 {
		t.Errorf("expected kernel size 2*radius+1=9, got %d", len(kernel))
	}
}

func TestSampleBilinearExactGridPoint(t *testing.T) {
	f := NewField(4, 4)
	for i := range f.Data {
		f.Data[i] = float32(i)
	}
	got := sampleBilinear(f, 2, 1)
	want := f.At(2, 1)
	if got != want {
		t.Errorf("sampling at an exact grid point should return that value, got %v want %v", got, want)
	}
}

func TestSampleBilinearClampsOutOfBounds(t *testing.T) {
	f := NewField(3, 3)
	for i := range f.Data {
		f.Data[i] = 5
	}
	got := sampleBilinear(f, -10, 100)
	if got != 5 {
		t.Errorf("out-of-bounds sample should clamp to the nearest edge value, got %v", got)
	}
}

func TestComputeFDoGConstantImageIsUniform(t *testing.T) {
	w, h := 10, 10
	luma := NewField(w, h)
	for i := range luma.Data {
		luma.Data[i] = 0.5
	}
	etf := flatEtfField(w, h)
	cfg := DefaultFdogConfig()
	resp := ComputeFDoG(luma, etf, cfg)
	want := 0.5 * (1 - float64(cfg.Tau)) // both Gaussians return 0.5, so E = 0.5 - tau*0.5
	for i, m := range resp.Magnitude {
		if math.Abs(float64(m)-want) > 1e-4 {
			t.Errorf("constant image should produce a uniform FDoG response of %v at %d, got %v", want, i, m)
		}
	}
}

func TestComputeXDoGConstantImageIsWhite(t *testing.T) {
	w, h := 10, 10
	luma := NewField(w, h)
	for i := range luma.Data {
		luma.Data[i] = 0.5
	}
	etf := flatEtfField(w, h)
	resp := ComputeXDoG(luma, etf, DefaultXdogConfig())
	for i, m := range resp.Magnitude {
		if math.Abs(float64(m)-1) > 1e-4 {
			t.Errorf("dog=0 everywhere in a flat image should give an xdog response of 1 (1^gamma), got %v at %d", m, i)
		}
	}
}

func TestApplyNMSSuppressesNonMaximalResponse(t *testing.T) {
	w, h := 9, 9
	resp := newEdgeResponse(w, h)
	// a single ridge at x=4, decaying away from it, to give NMS something
	// non-maximal to suppress on either side.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Abs(float64(x - 4))
			resp.Magnitude[y*w+x] = float32(math.Max(0, 1-d*0.4))
		}
	}
	etf := NewEtfField(w, h)
	for i := range etf.Tx {
		etf.Tx[i], etf.Ty[i] = 0, 1 // tangent runs vertically, gradient horizontal
		etf.Coherency[i] = 1
	}
	cfg := DefaultNmsConfig()
	cfg.SmoothBeforeNMS = false
	cfg.Low = 0
	out := ApplyNMS(resp, etf, cfg)

	ridge := out[4*w+4]
	off := out[4*w+2]
	if ridge <= 0 {
		t.Errorf("the ridge pixel should survive NMS as a local maximum, got %v", ridge)
	}
	if off != 0 {
		t.Errorf("a non-maximal pixel off the ridge should be suppressed to 0, got %v", off)
	}
}

func TestApplyNMSLowThresholdZeroesWeakResponse(t *testing.T) {
	w, h := 4, 4
	resp := newEdgeResponse(w, h)
	for i := range resp.Magnitude {
		resp.Magnitude[i] = 0.01
	}
	etf := flatEtfField(w, h)
	cfg := DefaultNmsConfig()
	cfg.SmoothBeforeNMS = false
	cfg.Low = 0.5
	out := ApplyNMS(resp, etf, cfg)
	for i, v := range out {
		if v != 0 {
			t.Errorf("response below Low threshold must be suppressed, got %v at %d", v, i)
		}
	}
}

func TestHysteresisThresholdConnectsWeakToStrongChain(t *testing.T) {
	w, h := 5, 1
	nms := []float32{1.0, 0.5, 0.5, 0.5, 0.0}
	out := HysteresisThreshold(nms, w, h, 0.2, 0.9)
	for i := 0; i < 4; i++ {
		if out[i] != 1 {
			t.Errorf("pixel %d should be kept as part of the chain reachable from a strong seed, got %v", i, out[i])
		}
	}
	if out[4] != 0 {
		t.Errorf("pixel below low threshold should be dropped, got %v", out[4])
	}
}

func TestHysteresisThresholdDropsWeakIslandWithoutStrongSeed(t *testing.T) {
	w, h := 3, 1
	nms := []float32{0.5, 0.5, 0.5}
	out := HysteresisThreshold(nms, w, h, 0.2, 0.9)
	for i, v := range out {
		if v != 0 {
			t.Errorf("a weak-only chain with no strong seed must be dropped entirely, got %v at %d", v, i)
		}
	}
}
