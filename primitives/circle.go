package primitives

import (
	"math"
	"math/rand/v2"

	"github.com/inkstroke/vectorize/geom"
	"gonum.org/v1/gonum/mat"
)

// FitCirclePratt fits a circle to points using the Pratt algebraic
// method: solve x^2+y^2+Dx+Ey+F=0 in normalized coordinates via the
// least-squares normal equations, then denormalize. Returns false if
// the points are coincident or the fit is degenerate (non-positive
// radius-squared).
func FitCirclePratt(points []geom.Point) (Circle, bool) {
	n := len(points)
	if n < 3 {
		return Circle{}, false
	}

	var meanX, meanY float64
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var scale float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		scale += math.Sqrt(dx*dx + dy*dy)
	}
	scale /= float64(n)
	if scale < 1e-10 {
		return Circle{}, false
	}

	a := mat.NewDense(n, 3, nil)
	b := mat.NewDense(n, 1, nil)
	for i, p := range points {
		x := (p.X - meanX) / scale
		y := (p.Y - meanY) / scale
		a.SetRow(i, []float64{x, y, 1})
		b.Set(i, 0, -(x*x + y*y))
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var atb mat.Dense
	atb.Mul(a.T(), b)

	var params mat.Dense
	if err := params.Solve(&ata, &atb); err != nil {
		return Circle{}, false
	}

	d, e, f := params.At(0, 0), params.At(1, 0), params.At(2, 0)
	centerXNorm := -d / 2
	centerYNorm := -e / 2
	radiusSqNorm := (d*d+e*e)/4 - f
	if radiusSqNorm <= 0 {
		return Circle{}, false
	}
	radiusNorm := math.Sqrt(radiusSqNorm)

	return Circle{
		Center: geom.Point{X: centerXNorm*scale + meanX, Y: centerYNorm*scale + meanY},
		Radius: radiusNorm * scale,
	}, true
}

// FitCircle3Points computes the unique circle through three
// non-collinear points via the standard circumcenter determinant
// formula.
func FitCircle3Points(p1, p2, p3 geom.Point) (Circle, bool) {
	det := (p2.X-p1.X)*(p3.Y-p1.Y) - (p3.X-p1.X)*(p2.Y-p1.Y)
	if math.Abs(det) < 1e-6 {
		return Circle{}, false
	}

	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < 1e-6 {
		return Circle{}, false
	}

	sq := func(p geom.Point) float64 { return p.X*p.X + p.Y*p.Y }
	ux := (sq(p1)*(p2.Y-p3.Y) + sq(p2)*(p3.Y-p1.Y) + sq(p3)*(p1.Y-p2.Y)) / d
	uy := (sq(p1)*(p3.X-p2.X) + sq(p2)*(p1.X-p3.X) + sq(p3)*(p2.X-p1.X)) / d

	center := geom.Point{X: ux, Y: uy}
	return Circle{Center: center, Radius: center.Distance(p1)}, true
}

// FitCircleRANSAC repeatedly fits a circle to 3 randomly sampled points
// and keeps the fit with the most inliers, for data with outlier noise
// that a direct algebraic fit would be skewed by.
func FitCircleRANSAC(points []geom.Point, cfg Config) (Circle, int, bool) {
	n := len(points)
	if n < 3 {
		return Circle{}, 0, false
	}

	var seedBytes [32]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(cfg.RANSACSeed >> (8 * i))
	}
	rng := rand.New(rand.NewChaCha8(seedBytes))

	var best Circle
	bestInliers := 0
	found := false

	for iter := 0; iter < cfg.RANSACIterations; iter++ {
		i1, i2, i3 := rng.IntN(n), rng.IntN(n), rng.IntN(n)
		if i1 == i2 || i1 == i3 || i2 == i3 {
			continue
		}
		c, ok := FitCircle3Points(points[i1], points[i2], points[i3])
		if !ok {
			continue
		}
		inliers := 0
		for _, p := range points {
			if math.Abs(p.Distance(c.Center)-c.Radius) < cfg.RANSACThreshold {
				inliers++
			}
		}
		if inliers > bestInliers {
			bestInliers = inliers
			best = c
			found = true
		}
	}
	return best, bestInliers, found
}

// CircleResidual returns the RMS distance-to-radius error of points
// against a fitted circle.
func CircleResidual(points []geom.Point, c Circle) float64 {
	var sumSq float64
	for _, p := range points {
		err := p.Distance(c.Center) - c.Radius
		sumSq += err * err
	}
	return math.Sqrt(sumSq / float64(len(points)))
}

// CircleConfidence returns the fraction of points whose distance to the
// fitted circle falls within 20% of its radius, the same inlier band
// the original fitter uses for its final confidence pass.
func CircleConfidence(points []geom.Point, c Circle) float64 {
	if len(points) == 0 || c.Radius <= 0 {
		return 0
	}
	tolerance := c.Radius * 0.2
	inliers := 0
	for _, p := range points {
		if math.Abs(p.Distance(c.Center)-c.Radius) < tolerance {
			inliers++
		}
	}
	confidence := float64(inliers) / float64(len(points))
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// Eccentricity estimates how far points deviate from circular via the
// second-moment (covariance) eigenvalue ratio around center: 0 for a
// perfect circle, approaching 1 for an elongated or degenerate shape.
func Eccentricity(points []geom.Point, center geom.Point) float64 {
	n := float64(len(points))
	var m20, m02, m11 float64
	for _, p := range points {
		dx, dy := p.X-center.X, p.Y-center.Y
		m20 += dx * dx
		m02 += dy * dy
		m11 += dx * dy
	}
	m20 /= n
	m02 /= n
	m11 /= n

	trace := m20 + m02
	det := m20*m02 - m11*m11
	if det <= 0 || trace <= 0 {
		return 1
	}
	disc := trace*trace - 4*det
	if disc < 0 {
		disc = 0
	}
	sqrtDisc := math.Sqrt(disc)
	lambda1 := 0.5 * (trace + sqrtDisc)
	lambda2 := 0.5 * (trace - sqrtDisc)
	if lambda1 <= 0 || lambda2 <= 0 {
		return 1
	}
	e := math.Sqrt(1 - lambda2/lambda1)
	if e < 0 {
		return 0
	}
	if e > 1 {
		return 1
	}
	return e
}
