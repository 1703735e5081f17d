package primitives

import (
	"math"

	"github.com/inkstroke/vectorize/geom"
	"gonum.org/v1/gonum/mat"
)

// FitEllipseTaubin fits an axis-unconstrained ellipse to points via the
// method of moments: the eigenvectors of the point covariance give the
// ellipse axes, and the eigenvalues give the semi-axis lengths.
func FitEllipseTaubin(points []geom.Point) (Ellipse, bool) {
	n := len(points)
	if n < 5 {
		return Ellipse{}, false
	}

	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	var sxx, syy, sxy float64
	for _, p := range points {
		dx, dy := p.X-cx, p.Y-cy
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	sxx /= float64(n)
	syy /= float64(n)
	sxy /= float64(n)

	cov := mat.NewSymDense(2, []float64{sxx, sxy, sxy, syy})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Ellipse{}, false
	}
	values := eig.Values(nil)
	// gonum returns eigenvalues ascending; the larger one is the major axis.
	lambda2, lambda1 := values[0], values[1]
	if lambda1 <= 0 || lambda2 <= 0 {
		return Ellipse{}, false
	}

	var angle float64
	if math.Abs(sxy) < 1e-6 {
		if sxx <= syy {
			angle = math.Pi / 2
		}
	} else {
		angle = 0.5 * math.Atan2(2*sxy, sxx-syy)
	}

	return Ellipse{
		Center:  geom.Point{X: cx, Y: cy},
		RadiusX: math.Sqrt(lambda1 * 2),
		RadiusY: math.Sqrt(lambda2 * 2),
		Angle:   angle,
	}, true
}

// EllipseConfidence returns the fraction of points whose normalized
// ellipse equation value (x/rx)^2+(y/ry)^2 falls within 20% of 1, the
// same inlier band the original fitter uses for its ellipse confidence.
func EllipseConfidence(points []geom.Point, e Ellipse) float64 {
	if len(points) == 0 {
		return 0
	}
	cosA, sinA := math.Cos(e.Angle), math.Sin(e.Angle)
	goodFits := 0
	for _, p := range points {
		dx, dy := p.X-e.Center.X, p.Y-e.Center.Y
		xr := dx*cosA + dy*sinA
		yr := -dx*sinA + dy*cosA
		value := (xr*xr)/(e.RadiusX*e.RadiusX) + (yr*yr)/(e.RadiusY*e.RadiusY)
		if math.Abs(value-1) < 0.2 {
			goodFits++
		}
	}
	return float64(goodFits) / float64(len(points))
}

// EllipseResidual returns the mean absolute deviation of points from
// the normalized ellipse equation (x/rx)^2+(y/ry)^2=1 in the ellipse's
// own rotated frame.
func EllipseResidual(points []geom.Point, e Ellipse) float64 {
	cosA, sinA := math.Cos(e.Angle), math.Sin(e.Angle)
	var total float64
	for _, p := range points {
		dx, dy := p.X-e.Center.X, p.Y-e.Center.Y
		xr := dx*cosA + dy*sinA
		yr := -dx*sinA + dy*cosA
		d := (xr*xr)/(e.RadiusX*e.RadiusX) + (yr*yr)/(e.RadiusY*e.RadiusY)
		total += math.Abs(d - 1)
	}
	return total / float64(len(points))
}
