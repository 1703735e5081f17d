package dots

import (
	"math"

	"github.com/inkstroke/vectorize/imgproc"
	"github.com/inkstroke/vectorize/internal/execpar"
)

// candidate is a scored dot placement site before spatial filtering.
type candidate struct {
	X, Y     int
	Strength float32
	Radius   float64
}

// calculateGradientStrength combines local gradient magnitude and
// variance into a single [0,1] strength score. The magnitude and
// variance normalization caps (362 and 255) match the observed range of
// Sobel magnitude and local-variance outputs over 8-bit luma; both
// bands are clamped before mixing so neither can dominate above its
// designed weight.
func calculateGradientStrength(magnitude, variance float32, adaptive bool) float32 {
	if !adaptive {
		m := magnitude / 362
		if m > 1 {
			m = 1
		}
		return m
	}
	m := magnitude
	if m > 362 {
		m = 362
	}
	m /= 362

	v := float32(math.Sqrt(float64(variance)))
	if v > 255 {
		v = 255
	}
	v /= 255

	return 0.7*m + 0.3*v
}

// strengthToRadius maps a [0,1] strength score to a dot radius between
// minRadius and maxRadius, using a square-root response so that small
// strength differences near zero still produce a visible radius spread.
func strengthToRadius(strength float32, minRadius, maxRadius float64) float64 {
	return minRadius + math.Sqrt(float64(strength))*(maxRadius-minRadius)
}

// strengthToOpacity maps a [0,1] strength score to an opacity in
// [0.3, 1.0], so that even low-strength dots remain faintly visible.
func strengthToOpacity(strength float32) float64 {
	return 0.3 + 0.7*float64(strength)
}

// generateCandidates scores every non-background pixel in a gradient
// analysis as a potential dot placement site.
func generateCandidates(ga *imgproc.GradientAnalysis, backgroundMask []bool, cfg Config) []candidate {
	w, h := ga.Width, ga.Height
	scores := execpar.Map(w*h, func(i int) candidate {
		if backgroundMask != nil && backgroundMask[i] {
			return candidate{X: -1, Y: -1}
		}
		strength := calculateGradientStrength(ga.Magnitude[i], ga.Variance[i], cfg.AdaptiveSizing)
		if strength < cfg.DensityThreshold {
			return candidate{X: -1, Y: -1}
		}
		radius := strengthToRadius(strength, cfg.MinRadius, cfg.MaxRadius)
		return candidate{X: i % w, Y: i / w, Strength: strength, Radius: radius}
	})

	out := scores[:0]
	for _, c := range scores {
		if c.X < 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}
