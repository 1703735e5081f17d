package vectorize

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsNonPositiveEtfRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Etf.Radius = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for Etf.Radius=0")
	}
}

func TestValidateRejectsNegativeEtfIters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Etf.Iters = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for negative Etf.Iters")
	}
}

func TestValidateRejectsSigmaCNotExceedingSigmaS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fdog.SigmaC = cfg.Fdog.SigmaS
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error when Fdog.SigmaC does not exceed Fdog.SigmaS")
	}
}

func TestValidateRejectsInvertedEdgeThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EdgeHigh = cfg.EdgeLow - 0.01
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error when EdgeHigh < EdgeLow")
	}
}

func TestValidateRejectsZeroNumColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quantize.NumColors = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for Quantize.NumColors=0")
	}
}

func TestValidateRejectsInvertedDotRadii(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dots.MaxRadius = cfg.Dots.MinRadius - 0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error when Dots.MaxRadius < Dots.MinRadius")
	}
}

func TestValidateRejectsTooFewPrimitiveMinPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Primitives.MinPoints = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for Primitives.MinPoints < 3")
	}
}

func TestValidateRejectsNegativeCoordinatePrecision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoordinatePrecision = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for negative CoordinatePrecision")
	}
}

func TestDefaultPerformanceConfig(t *testing.T) {
	p := DefaultPerformanceConfig()
	if !p.UseDotPool {
		t.Error("expected UseDotPool=true by default")
	}
	if p.OptimizeGridPass {
		t.Error("expected OptimizeGridPass=false by default")
	}
	if p.DotPoolCapacity != 4096 {
		t.Errorf("expected DotPoolCapacity=4096, got %d", p.DotPoolCapacity)
	}
}
