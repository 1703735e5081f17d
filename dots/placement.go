package dots

import (
	"sort"

	"github.com/inkstroke/vectorize/imgproc"
	"github.com/inkstroke/vectorize/internal/grid"
)

// Generate places stipple dots over non-background, high-gradient
// regions of an image: score every candidate pixel, sort by strength
// descending (strongest dots claim space first, ties kept in raster
// order), then greedily accept candidates whose spacing-scaled radius
// keeps them clear of every dot already placed. If the background
// detector marks more than
// backgroundFallbackRatio of the image as background, it is treated as
// unreliable for this image and filtering is disabled entirely rather
// than emitting almost no dots.
func Generate(w, h int, pix []uint8, ga *imgproc.GradientAnalysis, cfg Config) []Dot {
	mask := DetectBackgroundAdvanced(w, h, pix, cfg.Background)
	if exceedsBackgroundFallbackRatio(mask) {
		mask = nil
	}
	return place(w, h, pix, generateCandidates(ga, mask, cfg), cfg)
}

// GenerateWithoutBackgroundFiltering places dots ignoring background
// detection entirely. It exists for images where background detection
// is unreliable — e.g. high-contrast checkerboards, where every large
// flat region looks equally "foreground" by color distance alone — and
// an operator has decided to fall back to plain gradient-strength
// placement across the whole image.
func GenerateWithoutBackgroundFiltering(w, h int, pix []uint8, ga *imgproc.GradientAnalysis, cfg Config) []Dot {
	return place(w, h, pix, generateCandidates(ga, nil, cfg), cfg)
}

func place(w, h int, pix []uint8, candidates []candidate, cfg Config) []Dot {
	// Stable so that candidates of equal strength keep their original
	// (raster-scan) order rather than an arbitrary one.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Strength > candidates[j].Strength
	})

	g := grid.New(w, h, cfg.MaxRadius, cfg.SpacingFactor)

	var dots []Dot
	for _, c := range candidates {
		fx, fy := float64(c.X)+0.5, float64(c.Y)+0.5
		minDistance := c.Radius * cfg.SpacingFactor
		if !g.IsPositionValid(fx, fy, minDistance) {
			continue
		}
		g.Add(len(dots), fx, fy)
		dots = append(dots, Dot{
			X: fx, Y: fy,
			Radius:  c.Radius,
			Opacity: strengthToOpacity(c.Strength),
			Color:   pixelAt(pix, w, c.X, c.Y),
		})
	}
	return dots
}
