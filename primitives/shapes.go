package primitives

import "github.com/inkstroke/vectorize/geom"

// Circle is a fitted circle: center and radius.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Ellipse is a fitted, possibly rotated ellipse.
type Ellipse struct {
	Center           geom.Point
	RadiusX, RadiusY float64
	Angle            float64 // radians, rotation of the X semi-axis
}

// Arc is a fitted circular arc: a circle plus the angular span it
// actually covers.
type Arc struct {
	Center                 geom.Point
	Radius                 float64
	StartAngle, EndAngle   float64
}

// Kind identifies which primitive shape, if any, was detected.
type Kind int

const (
	None Kind = iota
	KindCircle
	KindEllipse
	KindArc
)

// Detected wraps whichever primitive detection succeeded, with its fit
// residual and confidence — the fraction of input points that fall
// within the shape's own inlier tolerance band.
type Detected struct {
	Kind       Kind
	Circle     Circle
	Ellipse    Ellipse
	Arc        Arc
	Residual   float64
	Confidence float64
}
