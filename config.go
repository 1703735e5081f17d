package vectorize

import (
	"github.com/inkstroke/vectorize/dots"
	"github.com/inkstroke/vectorize/imgproc"
	"github.com/inkstroke/vectorize/primitives"
	"github.com/inkstroke/vectorize/quantize"
	"github.com/inkstroke/vectorize/regiongrad"
)

// PerformanceConfig is a toggle-only record for the dot pool and the
// spatial grid re-optimization pass. Its fields are carried on Config
// but no stage reads them: Convert never uses a dot pool or runs a grid
// re-optimization pass, whatever their values.
type PerformanceConfig struct {
	UseDotPool       bool
	DotPoolCapacity  int
	OptimizeGridPass bool
}

// DefaultPerformanceConfig returns use_dot_pool=true,
// dot_pool_capacity=4096, optimize_grid_pass=false.
func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{UseDotPool: true, DotPoolCapacity: 4096, OptimizeGridPass: false}
}

// Config composes every per-stage configuration struct into the single
// value Convert needs.
type Config struct {
	Etf         imgproc.EtfConfig
	Fdog        imgproc.FdogConfig
	Xdog        imgproc.XdogConfig
	Nms         imgproc.NmsConfig
	Quantize    quantize.Config
	Dots        dots.Config
	Primitives  primitives.Config
	Gradient    regiongrad.Config
	Performance PerformanceConfig

	// UseXDoG selects XDoG over FDoG for edge response; both share the
	// downstream NMS/hysteresis stage.
	UseXDoG bool
	// EdgeLow/EdgeHigh are the hysteresis thresholds applied to the
	// selected edge response (mirrors Nms.Low/Nms.High so callers can
	// override without reaching into the nested struct).
	EdgeLow, EdgeHigh float32
	// SimplifyEpsilon is applied to traced line-art contours (as
	// distinct from Quantize.SimplifyEpsilon, which applies to
	// quantized color-layer contours).
	SimplifyEpsilon float64
	// CoordinatePrecision is the number of decimal digits written for
	// every SVG coordinate.
	CoordinatePrecision int
}

// DefaultConfig returns the default configuration for every stage.
func DefaultConfig() Config {
	nms := imgproc.DefaultNmsConfig()
	return Config{
		Etf: imgproc.DefaultEtfConfig(), Fdog: imgproc.DefaultFdogConfig(),
		Xdog: imgproc.DefaultXdogConfig(), Nms: nms,
		Quantize: quantize.DefaultConfig(), Dots: dots.DefaultConfig(),
		Primitives: primitives.DefaultConfig(), Gradient: regiongrad.DefaultConfig(),
		Performance:         DefaultPerformanceConfig(),
		UseXDoG:             false,
		EdgeLow:             nms.Low, EdgeHigh: nms.High,
		SimplifyEpsilon:     1.0,
		CoordinatePrecision: 2,
	}
}

// Validate checks a fixed subset of fields (ETF radius and iterations,
// FDoG sigmas, edge thresholds, color count, dot radii, primitive
// minimum points, coordinate precision) for an in-range value,
// returning the first violation found wrapped as a *ConfigError. Other
// fields are not checked.
func (c Config) Validate() error {
	switch {
	case c.Etf.Radius <= 0:
		return &ConfigError{Field: "Etf.Radius", Value: c.Etf.Radius, Reason: "must be positive"}
	case c.Etf.Iters < 0:
		return &ConfigError{Field: "Etf.Iters", Value: c.Etf.Iters, Reason: "must be non-negative"}
	case c.Fdog.SigmaS <= 0 || c.Fdog.SigmaC <= 0:
		return &ConfigError{Field: "Fdog.Sigma*", Value: nil, Reason: "sigmas must be positive"}
	case c.Fdog.SigmaC <= c.Fdog.SigmaS:
		return &ConfigError{Field: "Fdog.SigmaC", Value: c.Fdog.SigmaC, Reason: "must exceed Fdog.SigmaS"}
	case c.EdgeLow < 0 || c.EdgeHigh < c.EdgeLow:
		return &ConfigError{Field: "EdgeLow/EdgeHigh", Value: nil, Reason: "must satisfy 0 <= low <= high"}
	case c.Quantize.NumColors <= 0:
		return &ConfigError{Field: "Quantize.NumColors", Value: c.Quantize.NumColors, Reason: "must be positive"}
	case c.Dots.MinRadius <= 0 || c.Dots.MaxRadius < c.Dots.MinRadius:
		return &ConfigError{Field: "Dots.MinRadius/MaxRadius", Value: nil, Reason: "must satisfy 0 < min <= max"}
	case c.Primitives.MinPoints < 3:
		return &ConfigError{Field: "Primitives.MinPoints", Value: c.Primitives.MinPoints, Reason: "must be at least 3"}
	case c.CoordinatePrecision < 0:
		return &ConfigError{Field: "CoordinatePrecision", Value: c.CoordinatePrecision, Reason: "must be non-negative"}
	}
	return nil
}
