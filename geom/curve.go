package geom

// CubicBez is a cubic Bezier curve with control points P0..P3, used for
// the optional corner-preserving contour fit (smooth segments only; corner
// vertices stay polyline points).
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t in [0,1] via the Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Flatten samples the curve into n+1 points (n line segments) for SVG
// fallback rendering and for residual estimation during fitting.
func (c CubicBez) Flatten(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.Eval(float64(i)/float64(n)))
	}
	return pts
}

// FitCubicThroughTangents builds a cubic Bezier interpolating p0 and p1
// with the given unit tangent directions, using a chord-length-scaled
// handle length (the standard Catmull-Rom-derived heuristic used for
// smooth-segment corner fitting).
func FitCubicThroughTangents(p0, p1, t0, t1 Point) CubicBez {
	d := p0.Distance(p1) / 3.0
	return CubicBez{
		P0: p0,
		P1: p0.Add(t0.Mul(d)),
		P2: p1.Sub(t1.Mul(d)),
		P3: p1,
	}
}
