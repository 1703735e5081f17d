package dots

import "github.com/inkstroke/vectorize/colorspace"

// Dot is a single placed stipple: a position, size, opacity, and the
// sampled color it represents.
type Dot struct {
	X, Y    float64
	Radius  float64
	Opacity float64
	Color   colorspace.RGB8
}

// Config controls gradient-strength scoring, radius/opacity mapping,
// and greedy spatial placement.
type Config struct {
	MinRadius        float64
	MaxRadius        float64
	SpacingFactor    float64
	AdaptiveSizing   bool
	DensityFactor    float64
	DensityThreshold float32
	Background       BackgroundConfig
}

// DefaultConfig returns min_radius=0.5, max_radius=3.0,
// spacing_factor=1.5, adaptive_sizing=true, density_factor=1.0,
// density_threshold=0.1, and the default background configuration.
func DefaultConfig() Config {
	return Config{
		MinRadius: 0.5, MaxRadius: 3.0, SpacingFactor: 1.5,
		AdaptiveSizing: true, DensityFactor: 1.0, DensityThreshold: 0.1,
		Background: DefaultBackgroundConfig(),
	}
}
