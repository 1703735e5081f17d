package quantize

import (
	"math"

	"github.com/inkstroke/vectorize/colorspace"
	"github.com/inkstroke/vectorize/geom"
)

// ColorLayer is one flat-color layer of the quantized image: a palette
// color and the simplified contours bounding the pixels assigned to it.
type ColorLayer struct {
	Color    colorspace.RGB8
	Contours []geom.Polyline
	Curves   [][]geom.CubicBez // parallel to Contours when cfg.FitCurves is set
	// Mask marks which pixels of the source image (row-major, w*h) this
	// layer's color was assigned to, after despeckling. Callers that want
	// to analyze the region's actual pixels (e.g. for gradient-fill
	// detection) use this rather than re-deriving it from Contours.
	Mask []bool
}

// Quantize reduces an RGBA8 image to a palette of color layers, each
// with despeckled, traced, simplified (and optionally curve-fitted)
// contours.
func Quantize(w, h int, pix []uint8, cfg Config) []ColorLayer {
	palette := ExtractPalette(w, h, pix, cfg.NumColors, cfg.RandomSeed)
	layers := make([]ColorLayer, 0, len(palette))

	for i, color := range palette {
		mask := LayerMask(w, h, pix, palette, i, cfg.ColorTolerance)
		mask = Despeckle(mask, w, h, cfg.MinRegionArea)

		contours := TraceContours(mask, w, h)
		for ci := range contours {
			contours[ci].Points = geom.RDPSimplify(contours[ci].Points, cfg.SimplifyEpsilon)
		}

		layer := ColorLayer{Color: color, Contours: contours, Mask: mask}
		if cfg.FitCurves {
			layer.Curves = make([][]geom.CubicBez, len(contours))
			for ci, contour := range contours {
				layer.Curves[ci] = fitSmoothSegments(contour.Points, cfg.CornerAngleLimit)
			}
		}
		layers = append(layers, layer)
	}
	return layers
}

// fitSmoothSegments walks a closed simplified contour and fits a cubic
// Bezier between each consecutive pair of vertices, using the local
// chord directions as tangents. Vertices whose interior angle is
// sharper than cornerAngleLimit keep the segments on either side from
// blending (the fit still produces one curve per edge; sharp corners
// simply end up with tangents that hug their adjacent edges rather
// than smoothing across them).
func fitSmoothSegments(points []geom.Point, cornerAngleLimit float64) []geom.CubicBez {
	n := len(points)
	if n < 3 {
		return nil
	}
	tangents := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		dir := next.Sub(prev)
		if dir.Length() == 0 {
			tangents[i] = geom.Point{X: 1}
			continue
		}
		tangents[i] = dir.Normalize()
		if interiorAngle(prev, points[i], next) < cornerAngleLimit {
			// Sharp corner: bias the tangent toward the incoming edge so
			// the fitted curve doesn't round the corner off.
			in := points[i].Sub(prev).Normalize()
			tangents[i] = in
		}
	}

	curves := make([]geom.CubicBez, n)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		curves[i] = geom.FitCubicThroughTangents(points[i], points[next], tangents[i], tangents[next])
	}
	return curves
}

func interiorAngle(prev, curr, next geom.Point) float64 {
	a := prev.Sub(curr).Normalize()
	b := next.Sub(curr).Normalize()
	dot := a.Dot(b)
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return math.Acos(dot)
}
