// Package quantize reduces a raster image to a small palette of flat
// color layers, each described by a set of traced, simplified
// contours suitable for direct SVG emission.
package quantize

// Config controls palette extraction and contour post-processing.
type Config struct {
	NumColors        int
	RandomSeed       uint64
	ColorTolerance   float64 // RGB8 distance a pixel may be from its layer color
	MinRegionArea    int     // connected components smaller than this are despeckled
	SimplifyEpsilon  float64 // RDP epsilon in pixel units
	FitCurves        bool    // fit cubic Beziers through simplified corners
	CornerAngleLimit float64 // radians; vertices sharper than this stay corners
}

// DefaultConfig returns num_colors=6, random_seed=42, color_tolerance=24,
// min_region_area=4, simplify_epsilon=1.0, fit_curves=true, and a
// corner-angle limit of 0.35 rad (~20 degrees).
func DefaultConfig() Config {
	return Config{
		NumColors: 6, RandomSeed: 42, ColorTolerance: 24,
		MinRegionArea: 4, SimplifyEpsilon: 1.0, FitCurves: true,
		CornerAngleLimit: 0.35,
	}
}
