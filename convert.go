package vectorize

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthonynsimon/bild/blur"

	"github.com/inkstroke/vectorize/colorspace"
	"github.com/inkstroke/vectorize/dots"
	"github.com/inkstroke/vectorize/geom"
	"github.com/inkstroke/vectorize/imgproc"
	"github.com/inkstroke/vectorize/primitives"
	"github.com/inkstroke/vectorize/quantize"
	"github.com/inkstroke/vectorize/regiongrad"
	"github.com/inkstroke/vectorize/svgdoc"
)

// Mode selects which output the Convert pipeline produces.
type Mode int

const (
	// ModeColor traces flat color layers (the default, primary mode).
	ModeColor Mode = iota
	// ModeLineArt traces a single flow-guided edge silhouette.
	ModeLineArt
	// ModeDots places stipple dots over high-gradient, non-background
	// regions.
	ModeDots
)

// PreprocessConfig controls the optional pre-blur step applied to the
// raw input before any stage-specific processing, ahead of tracing.
type PreprocessConfig struct {
	// DownscaleMaxDimension is not read by Convert or by the CLI driver;
	// the CLI caps the input size through its own -max-dimension flag,
	// via golang.org/x/image/draw, before Convert sees the image.
	DownscaleMaxDimension int
	// BlurSigma, when positive, softens input noise before gradient
	// analysis via bild's Gaussian blur.
	BlurSigma float64
}

// Convert runs the full pipeline for a given mode and returns a
// complete SVG document. cfg is validated once, up front; every stage
// after that either completes or reports a local, per-unit failure
// (skip a contour/region/candidate, never the whole image) except for
// whole-image failures, which return early: config validation errors
// and an unknown mode as a *ConfigError, invalid input and context
// cancellation wrapped in a *StageError.
func Convert(ctx context.Context, img *RasterImage, mode Mode, cfg Config, pre PreprocessConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, &StageError{Stage: "input", Err: err}
	}

	pix := img.Pix
	if pre.BlurSigma > 0 {
		pix = preBlur(img, pre.BlurSigma)
	}

	logger := Logger()
	start := time.Now()
	defer func() {
		logger.Debug("convert finished", "mode", mode, "elapsed", time.Since(start))
	}()

	var buf bytes.Buffer
	doc := svgdoc.New(&buf, img.Width, img.Height, cfg.CoordinatePrecision)

	var stageErr error
	switch mode {
	case ModeColor:
		stageErr = convertColor(ctx, img.Width, img.Height, pix, cfg, doc, logger)
	case ModeLineArt:
		stageErr = convertLineArt(ctx, img.Width, img.Height, pix, cfg, doc, logger)
	case ModeDots:
		stageErr = convertDots(ctx, img.Width, img.Height, pix, cfg, doc, logger)
	default:
		stageErr = &ConfigError{Field: "Mode", Value: mode, Reason: "unknown mode"}
	}
	doc.Close()
	if stageErr != nil {
		return nil, stageErr
	}

	return buf.Bytes(), nil
}

func preBlur(img *RasterImage, sigma float64) []uint8 {
	src := img.toNRGBA()
	blurred := blur.Gaussian(src, sigma)
	out := make([]uint8, len(img.Pix))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := blurred.At(x, y).RGBA()
			i := (y*img.Width + x) * 4
			out[i+0] = uint8(r >> 8)
			out[i+1] = uint8(g >> 8)
			out[i+2] = uint8(b >> 8)
			out[i+3] = uint8(a >> 8)
		}
	}
	return out
}

func convertColor(ctx context.Context, w, h int, pix []uint8, cfg Config, doc *svgdoc.Document, logger *slog.Logger) error {
	layers := quantize.Quantize(w, h, pix, cfg.Quantize)
	logger.Debug("quantized", "layers", len(layers))

	for _, layer := range layers {
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: "quantize", Err: err}
		}

		if cfg.Primitives.MinPoints > 0 {
			layer = tryFitPrimitives(layer, cfg.Primitives, doc)
		}

		fillAttr := fmt.Sprintf(`fill="%s"`, layer.Color.Hex())
		if cfg.Gradient.Enabled {
			if grad, ok := fitLayerGradient(w, pix, layer, cfg.Gradient, doc); ok {
				fillAttr = grad
			}
		}

		if layer.Curves != nil {
			doc.WriteCurveLayerFill(layer.Curves, fillAttr)
		} else {
			doc.WriteLayerFill(layer.Contours, fillAttr)
		}
	}
	return nil
}

// fitLayerGradient analyzes a color layer's actual source pixels (not
// the flattened palette color they were assigned) for a smooth linear
// gradient and, when one fits, defines it on doc and returns the fill
// attribute referencing it.
func fitLayerGradient(w int, pix []uint8, layer quantize.ColorLayer, cfg regiongrad.Config, doc *svgdoc.Document) (string, bool) {
	if len(layer.Mask) == 0 {
		return "", false
	}
	var xs, ys []int
	var colors []colorspace.Lab
	for i, member := range layer.Mask {
		if !member {
			continue
		}
		xs = append(xs, i%w)
		ys = append(ys, i/w)
		rgb := colorspace.RGB8{R: pix[i*4], G: pix[i*4+1], B: pix[i*4+2]}
		colors = append(colors, rgb.ToLab())
	}

	result := regiongrad.Analyze(xs, ys, colors, cfg)
	if !result.UseGradient {
		return "", false
	}

	stops := make([]svgdoc.GradientStop, len(result.Stops))
	for i, s := range result.Stops {
		stops[i] = svgdoc.GradientStop{Offset: s.Offset, Color: s.Color.ToRGB8()}
	}
	return doc.WriteLinearGradient(result.StartX, result.StartY, result.EndX, result.EndY, stops), true
}

// tryFitPrimitives replaces any non-hole contour that fits a circle or
// ellipse within tolerance with that primitive, written directly, and
// removes it from the layer's remaining path contours so it isn't
// double-drawn.
func tryFitPrimitives(layer quantize.ColorLayer, cfg primitives.Config, doc *svgdoc.Document) quantize.ColorLayer {
	var remaining []geom.Polyline
	var remainingCurves [][]geom.CubicBez
	hasCurves := layer.Curves != nil

	for i, contour := range layer.Contours {
		if contour.IsHole {
			remaining = append(remaining, contour)
			if hasCurves {
				remainingCurves = append(remainingCurves, layer.Curves[i])
			}
			continue
		}
		detected, ok := primitives.Detect(contour.Points, cfg)
		if !ok {
			remaining = append(remaining, contour)
			if hasCurves {
				remainingCurves = append(remainingCurves, layer.Curves[i])
			}
			continue
		}
		switch detected.Kind {
		case primitives.KindCircle:
			doc.WriteCircle(detected.Circle.Center.X, detected.Circle.Center.Y, detected.Circle.Radius, layer.Color, 1)
		case primitives.KindEllipse:
			doc.WriteEllipse(detected.Ellipse.Center.X, detected.Ellipse.Center.Y,
				detected.Ellipse.RadiusX, detected.Ellipse.RadiusY, detected.Ellipse.Angle, layer.Color)
		default:
			remaining = append(remaining, contour)
			if hasCurves {
				remainingCurves = append(remainingCurves, layer.Curves[i])
			}
		}
	}

	layer.Contours = remaining
	if hasCurves {
		layer.Curves = remainingCurves
	}
	return layer
}

func convertLineArt(ctx context.Context, w, h int, pix []uint8, cfg Config, doc *svgdoc.Document, logger *slog.Logger) error {
	luma := imgproc.Luma(w, h, pix)
	etf := imgproc.ComputeETF(luma, cfg.Etf)

	var resp *imgproc.EdgeResponse
	if cfg.UseXDoG {
		resp = imgproc.ComputeXDoG(luma, etf, cfg.Xdog)
	} else {
		resp = imgproc.ComputeFDoG(luma, etf, cfg.Fdog)
	}

	nms := imgproc.ApplyNMS(resp, etf, cfg.Nms)
	edges := imgproc.HysteresisThreshold(nms, w, h, cfg.EdgeLow, cfg.EdgeHigh)

	mask := make([]bool, w*h)
	for i, v := range edges {
		mask[i] = v > 0
	}

	if err := ctx.Err(); err != nil {
		return &StageError{Stage: "edges", Err: err}
	}

	contours := quantize.TraceContours(mask, w, h)
	logger.Debug("traced line art", "contours", len(contours))
	for i := range contours {
		contours[i].Points = geom.RDPSimplify(contours[i].Points, cfg.SimplifyEpsilon)
	}

	doc.WriteLayer(contours, colorspace.RGB8{})
	return nil
}

func convertDots(ctx context.Context, w, h int, pix []uint8, cfg Config, doc *svgdoc.Document, logger *slog.Logger) error {
	luma := imgproc.Luma(w, h, pix)
	ga := imgproc.ComputeGradientAnalysis(luma, 2)

	if err := ctx.Err(); err != nil {
		return &StageError{Stage: "gradient-analysis", Err: err}
	}

	placed := dots.Generate(w, h, pix, ga, cfg.Dots)
	logger.Debug("placed dots", "count", len(placed))

	for _, d := range placed {
		doc.WriteCircle(d.X, d.Y, d.Radius, d.Color, d.Opacity)
	}
	return nil
}
