package primitives

import (
	"math"

	"github.com/inkstroke/vectorize/geom"
)

// Detect fits every supported primitive (circle, axis-near ellipse,
// arc) and returns whichever candidate clears both its own fit
// tolerance and cfg.MinConfidence, preferring the one with the highest
// confidence. Ties (equal confidence) keep the earlier candidate in
// circle, ellipse, arc order.
func Detect(contour []geom.Point, cfg Config) (Detected, bool) {
	if len(contour) < cfg.MinPoints {
		return Detected{}, false
	}
	points := contour
	if len(points) > cfg.MaxPoints {
		points = subsample(points, cfg.MaxPoints)
	}

	var best Detected
	found := false

	if d, ok := detectCircle(points, cfg); ok && d.Confidence > best.Confidence {
		best, found = d, true
	}
	if d, ok := detectEllipse(points, cfg); ok && d.Confidence > best.Confidence {
		best, found = d, true
	}
	if d, ok := DetectArc(points, cfg); ok && d.Confidence > best.Confidence {
		best, found = d, true
	}
	return best, found
}

func detectCircle(points []geom.Point, cfg Config) (Detected, bool) {
	var circle Circle
	var ok bool
	if cfg.UseRANSAC {
		var inliers int
		circle, inliers, ok = FitCircleRANSAC(points, cfg)
		if ok && inliers < cfg.MinPoints {
			ok = false
		}
	} else {
		circle, ok = FitCirclePratt(points)
	}
	if !ok {
		return Detected{}, false
	}

	residual := CircleResidual(points, circle)
	if residual > cfg.FitTolerance {
		return Detected{}, false
	}
	if Eccentricity(points, circle.Center) > cfg.MaxCircleEccentricity {
		return Detected{}, false
	}
	confidence := CircleConfidence(points, circle)
	if confidence <= cfg.MinConfidence {
		return Detected{}, false
	}
	return Detected{Kind: KindCircle, Circle: circle, Residual: residual, Confidence: confidence}, true
}

func detectEllipse(points []geom.Point, cfg Config) (Detected, bool) {
	ellipse, ok := FitEllipseTaubin(points)
	if !ok {
		return Detected{}, false
	}
	residual := EllipseResidual(points, ellipse)
	if residual > cfg.FitTolerance {
		return Detected{}, false
	}

	angleFromAxis := math.Mod(math.Abs(ellipse.Angle), math.Pi/2)
	axisDeviation := math.Min(angleFromAxis, math.Pi/2-angleFromAxis)
	if axisDeviation > cfg.AxisAlignmentTolerance {
		return Detected{}, false
	}
	confidence := EllipseConfidence(points, ellipse)
	if confidence <= cfg.MinConfidence {
		return Detected{}, false
	}
	return Detected{Kind: KindEllipse, Ellipse: ellipse, Residual: residual, Confidence: confidence}, true
}

func subsample(points []geom.Point, target int) []geom.Point {
	if len(points) <= target {
		return points
	}
	step := float64(len(points)) / float64(target)
	out := make([]geom.Point, 0, target)
	for i := 0; i < target; i++ {
		idx := int(float64(i) * step)
		if idx < len(points) {
			out = append(out, points[idx])
		}
	}
	return out
}
