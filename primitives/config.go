// Package primitives fits simple analytic shapes — circles, ellipses,
// arcs — to traced contours, so a near-perfect geometric shape can be
// emitted as a native SVG <circle>/<ellipse> instead of a dense path.
package primitives

import "math"

// Config controls primitive detection thresholds.
type Config struct {
	FitTolerance           float64
	MaxCircleEccentricity  float64
	AxisAlignmentTolerance float64
	MinPoints              int
	MaxPoints              int
	MinArcAngle            float64
	UseRANSAC              bool
	RANSACIterations       int
	RANSACThreshold        float64
	RANSACSeed             uint64
	// MinConfidence is the minimum fraction of points that must fall
	// within a shape's own inlier band for that shape to be accepted at
	// all; among accepted shapes, the one with the highest confidence
	// wins.
	MinConfidence float64
}

// DefaultConfig returns fit_tolerance=2.0, max_circle_eccentricity=0.15,
// axis_alignment_tolerance=5 degrees, min_points=8, max_points=500,
// min_arc_angle=45 degrees, use_ransac=false, ransac_iterations=100,
// ransac_threshold=3.0, min_confidence=0.3.
func DefaultConfig() Config {
	return Config{
		FitTolerance: 2.0, MaxCircleEccentricity: 0.15,
		AxisAlignmentTolerance: 5 * math.Pi / 180,
		MinPoints:              8, MaxPoints: 500,
		MinArcAngle: math.Pi / 4, UseRANSAC: false,
		RANSACIterations: 100, RANSACThreshold: 3.0, RANSACSeed: 42,
		MinConfidence: 0.3,
	}
}
