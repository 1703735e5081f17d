// Package svgdoc emits the traced contours, fitted primitives, and
// placed dots as an SVG document, wrapping github.com/ajstarks/svgo
// for document structure while writing path/shape data directly so
// coordinate precision is never truncated to svgo's integer-only shape
// helpers.
package svgdoc

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/inkstroke/vectorize/colorspace"
	"github.com/inkstroke/vectorize/geom"
)

// Document writes a single SVG image to an underlying writer.
type Document struct {
	canvas     *svg.SVG
	w          io.Writer
	precision  int
	gradientID int
}

// GradientStop is one color stop of a linear gradient, in the [0,1]
// offset range WriteLinearGradient expects.
type GradientStop struct {
	Offset float64
	Color  colorspace.RGB8
}

// New starts an SVG document of the given pixel dimensions, rooted at
// a viewBox covering the full image. precision controls the number of
// decimal digits written for every coordinate.
func New(w io.Writer, width, height, precision int) *Document {
	canvas := svg.New(w)
	canvas.Startview(width, height, 0, 0, width, height)
	if precision < 0 {
		precision = 0
	}
	return &Document{canvas: canvas, w: w, precision: precision}
}

// Close ends the SVG document.
func (d *Document) Close() {
	d.canvas.End()
}

func (d *Document) fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', d.precision, 64)
}

// WriteLayer emits one or more closed contours sharing a fill color as
// a single <path> element. Contours marked IsHole are appended as
// additional subpaths of the same path, and fill-rule="evenodd" is set
// whenever any hole is present so the even-odd rule punches them out of
// their enclosing contour rather than rendering them as separate solid
// shapes.
func (d *Document) WriteLayer(contours []geom.Polyline, color colorspace.RGB8) {
	d.WriteLayerFill(contours, fmt.Sprintf(`fill="%s"`, color.Hex()))
}

// WriteLayerFill is WriteLayer with an arbitrary fill attribute, so a
// layer can reference a gradient (`fill="url(#...)"`) instead of a flat
// color.
func (d *Document) WriteLayerFill(contours []geom.Polyline, fillAttr string) {
	if len(contours) == 0 {
		return
	}
	var hasHole bool
	var path strings.Builder
	for _, c := range contours {
		if c.IsHole {
			hasHole = true
		}
		d.writeSubpath(&path, c)
	}

	attrs := []string{fillAttr}
	if hasHole {
		attrs = append(attrs, `fill-rule="evenodd"`)
	}
	d.canvas.Path(path.String(), attrs...)
}

func (d *Document) writeSubpath(sb *strings.Builder, c geom.Polyline) {
	if len(c.Points) == 0 {
		return
	}
	sb.WriteString("M")
	sb.WriteString(d.fmtCoord(c.Points[0].X))
	sb.WriteString(",")
	sb.WriteString(d.fmtCoord(c.Points[0].Y))
	for _, p := range c.Points[1:] {
		sb.WriteString(" L")
		sb.WriteString(d.fmtCoord(p.X))
		sb.WriteString(",")
		sb.WriteString(d.fmtCoord(p.Y))
	}
	if c.Closed {
		sb.WriteString(" Z")
	}
	sb.WriteString(" ")
}

// WriteCurveLayer emits a layer whose contours have been fitted with
// cubic Beziers, writing C commands instead of L.
func (d *Document) WriteCurveLayer(curveSets [][]geom.CubicBez, color colorspace.RGB8) {
	d.WriteCurveLayerFill(curveSets, fmt.Sprintf(`fill="%s"`, color.Hex()))
}

// WriteCurveLayerFill is WriteCurveLayer with an arbitrary fill
// attribute, so a curve layer can reference a gradient instead of a
// flat color. Curve sets carry no hole flag, so fill-rule="evenodd" is
// always set: a subpath nested inside another is punched out.
func (d *Document) WriteCurveLayerFill(curveSets [][]geom.CubicBez, fillAttr string) {
	if len(curveSets) == 0 {
		return
	}
	var path strings.Builder
	for _, curves := range curveSets {
		if len(curves) == 0 {
			continue
		}
		path.WriteString("M")
		path.WriteString(d.fmtCoord(curves[0].P0.X))
		path.WriteString(",")
		path.WriteString(d.fmtCoord(curves[0].P0.Y))
		for _, c := range curves {
			path.WriteString(" C")
			path.WriteString(d.fmtCoord(c.P1.X))
			path.WriteString(",")
			path.WriteString(d.fmtCoord(c.P1.Y))
			path.WriteString(" ")
			path.WriteString(d.fmtCoord(c.P2.X))
			path.WriteString(",")
			path.WriteString(d.fmtCoord(c.P2.Y))
			path.WriteString(" ")
			path.WriteString(d.fmtCoord(c.P3.X))
			path.WriteString(",")
			path.WriteString(d.fmtCoord(c.P3.Y))
		}
		path.WriteString(" Z ")
	}
	d.canvas.Path(path.String(), fillAttr, `fill-rule="evenodd"`)
}

// WriteLinearGradient defines a <linearGradient> in objectBoundingBox-independent
// user-space coordinates running from (x1,y1) to (x2,y2) and returns a
// fill attribute string referencing it via url(#id).
func (d *Document) WriteLinearGradient(x1, y1, x2, y2 float64, stops []GradientStop) string {
	id := fmt.Sprintf("grad%d", d.gradientID)
	d.gradientID++

	fmt.Fprintf(d.w, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
		id, d.fmtCoord(x1), d.fmtCoord(y1), d.fmtCoord(x2), d.fmtCoord(y2))
	for _, s := range stops {
		fmt.Fprintf(d.w, `<stop offset="%s" stop-color="%s"/>`+"\n", d.fmtCoord(s.Offset), s.Color.Hex())
	}
	fmt.Fprint(d.w, "</linearGradient>\n")

	return fmt.Sprintf(`fill="url(#%s)"`, id)
}

// WriteCircle writes a <circle> element at full coordinate precision
// (svgo's own Circle helper truncates to int, which this tracer's
// primitive fits are precise enough to need to avoid). The opacity
// attribute is omitted entirely when opacity is 1, the SVG default.
func (d *Document) WriteCircle(cx, cy, r float64, color colorspace.RGB8, opacity float64) {
	if opacity == 1 {
		fmt.Fprintf(d.w, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			d.fmtCoord(cx), d.fmtCoord(cy), d.fmtCoord(r), color.Hex())
		return
	}
	fmt.Fprintf(d.w, `<circle cx="%s" cy="%s" r="%s" fill="%s" opacity="%s"/>`+"\n",
		d.fmtCoord(cx), d.fmtCoord(cy), d.fmtCoord(r), color.Hex(), d.fmtCoord(opacity))
}

// WriteEllipse writes an <ellipse> element, rotated about its center
// via a transform when angle is non-zero.
func (d *Document) WriteEllipse(cx, cy, rx, ry, angle float64, color colorspace.RGB8) {
	transform := ""
	if angle != 0 {
		degrees := angle * 180 / math.Pi
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, d.fmtCoord(degrees), d.fmtCoord(cx), d.fmtCoord(cy))
	}
	fmt.Fprintf(d.w, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="%s"%s/>`+"\n",
		d.fmtCoord(cx), d.fmtCoord(cy), d.fmtCoord(rx), d.fmtCoord(ry), color.Hex(), transform)
}

// WriteArc writes an elliptical arc as a stroked <path> using the SVG
// "A" command.
func (d *Document) WriteArc(cx, cy, radius, startAngle, endAngle float64, color colorspace.RGB8, strokeWidth float64) {
	startX := cx + radius*math.Cos(startAngle)
	startY := cy + radius*math.Sin(startAngle)
	endX := cx + radius*math.Cos(endAngle)
	endY := cy + radius*math.Sin(endAngle)

	largeArc := 0
	if math.Abs(endAngle-startAngle) > math.Pi {
		largeArc = 1
	}
	sweep := 0
	if endAngle > startAngle {
		sweep = 1
	}

	data := fmt.Sprintf("M %s %s A %s %s 0 %d %d %s %s",
		d.fmtCoord(startX), d.fmtCoord(startY),
		d.fmtCoord(radius), d.fmtCoord(radius),
		largeArc, sweep, d.fmtCoord(endX), d.fmtCoord(endY))
	d.canvas.Path(data, fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`, color.Hex(), d.fmtCoord(strokeWidth)))
}
