package primitives

import (
	"math"
	"sort"

	"github.com/inkstroke/vectorize/geom"
)

// DetectArc fits a circle to points, then checks whether the points
// only cover a partial angular span around it (an arc) rather than the
// full circle.
func DetectArc(points []geom.Point, cfg Config) (Detected, bool) {
	if len(points) < 5 {
		return Detected{}, false
	}
	circle, ok := FitCirclePratt(points)
	if !ok {
		return Detected{}, false
	}

	angles := make([]float64, len(points))
	for i, p := range points {
		angles[i] = math.Atan2(p.Y-circle.Center.Y, p.X-circle.Center.X)
	}
	sort.Float64s(angles)

	span := angles[len(angles)-1] - angles[0]
	if span > math.Pi {
		span = 2*math.Pi - span
	}

	if span < cfg.MinArcAngle || span >= 2*math.Pi-cfg.MinArcAngle {
		return Detected{}, false
	}

	residual := CircleResidual(points, circle)
	if residual > cfg.FitTolerance {
		return Detected{}, false
	}

	confidence := CircleConfidence(points, circle)
	if confidence <= cfg.MinConfidence {
		return Detected{}, false
	}

	return Detected{
		Kind: KindArc,
		Arc: Arc{
			Center: circle.Center, Radius: circle.Radius,
			StartAngle: angles[0], EndAngle: angles[len(angles)-1],
		},
		Residual:   residual,
		Confidence: confidence,
	}, true
}
