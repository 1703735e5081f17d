package dots

import (
	"gonum.org/v1/gonum/stat"

	"github.com/inkstroke/vectorize/imgproc"
)

// regionSize is the side length, in pixels, of an adaptive-density
// analysis region.
const regionSize = 32

// Region describes one adaptive-density analysis tile: its bounds and
// a complexity score in [0,1] derived from its gradient statistics.
type Region struct {
	X, Y, W, H int
	Complexity float64
}

// ComputeAdaptiveRegions partitions an image into regionSize tiles and
// scores each by local gradient complexity, mixing mean gradient
// magnitude, gradient-magnitude variance across the region, and the
// mean of the per-pixel local-variance field. Edge tiles are clipped to
// the image bounds rather than padded.
func ComputeAdaptiveRegions(ga *imgproc.GradientAnalysis) []Region {
	w, h := ga.Width, ga.Height
	var regions []Region

	for ry := 0; ry < h; ry += regionSize {
		for rx := 0; rx < w; rx += regionSize {
			rw := regionSize
			if rx+rw > w {
				rw = w - rx
			}
			rh := regionSize
			if ry+rh > h {
				rh = h - ry
			}

			var magnitudes, variances []float64
			for y := ry; y < ry+rh; y++ {
				for x := rx; x < rx+rw; x++ {
					idx := y*w + x
					magnitudes = append(magnitudes, float64(ga.Magnitude[idx]))
					variances = append(variances, float64(ga.Variance[idx]))
				}
			}
			if len(magnitudes) == 0 {
				continue
			}
			meanMag, magVariance := stat.MeanVariance(magnitudes, nil)
			meanVar := stat.Mean(variances, nil)

			normMag := clamp01(meanMag / 362)
			normMagVar := clamp01(magVariance / (362 * 362))
			normVar := clamp01(meanVar / (255 * 255))

			complexity := 0.4*normMag + 0.3*normMagVar + 0.3*normVar
			regions = append(regions, Region{X: rx, Y: ry, W: rw, H: rh, Complexity: complexity})
		}
	}
	return regions
}

// DensityMultiplier maps a region's complexity score to a multiplier
// applied to its spacing factor: complex regions get denser (smaller
// spacing), flat regions get sparser.
func (r Region) DensityMultiplier() float64 {
	return 1.5 - r.Complexity
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
