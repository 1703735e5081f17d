// Package regiongrad is an optional, disabled-by-default fill
// enhancement: it tests a traced color region for a smooth linear color
// gradient via PCA and, when one fits well, emits gradient stops
// instead of a flat fill. It never alters contour geometry — only which
// fill a region's path uses.
package regiongrad

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/inkstroke/vectorize/colorspace"
)

// Config controls gradient-fit acceptance thresholds.
type Config struct {
	Enabled                     bool
	RSquaredThreshold           float64
	MaxGradientStops            int
	MinRegionArea               int
	EnhancedPCA                 bool
	DirectionStabilityThreshold float64
}

// DefaultConfig returns enabled=false, r_squared_threshold=0.85,
// max_gradient_stops=8, min_region_area=100, enhanced_pca=true,
// direction_stability_threshold=0.9. Gradient detection stays disabled
// by default so default output matches a flat-fill tracer exactly.
func DefaultConfig() Config {
	return Config{
		Enabled: false, RSquaredThreshold: 0.85, MaxGradientStops: 8,
		MinRegionArea: 100, EnhancedPCA: true, DirectionStabilityThreshold: 0.9,
	}
}

// Stop is a single color stop along a detected gradient.
type Stop struct {
	Offset float64
	Color  colorspace.Lab
}

// Result is the outcome of analyzing one region.
type Result struct {
	UseGradient bool
	StartX, StartY float64
	EndX, EndY     float64
	Stops          []Stop
	RSquared       float64
}

// Analyze runs an unweighted PCA over a region's pixel positions and
// takes the axis of largest spatial spread. When L* fitted linearly
// against each pixel's projection onto that axis gives
// R² >= cfg.RSquaredThreshold (and, for enhanced PCA, an
// eigenvalue-ratio-based direction stability >= cfg.
// DirectionStabilityThreshold), it returns a usable linear gradient.
func Analyze(xs, ys []int, colors []colorspace.Lab, cfg Config) Result {
	n := len(xs)
	if !cfg.Enabled || n < cfg.MinRegionArea {
		return Result{}
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += float64(xs[i])
		meanY += float64(ys[i])
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := float64(xs[i]) - meanX
		dy := float64(ys[i]) - meanY
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
		return Result{}
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Largest eigenvalue is the principal direction of spatial spread.
	majorIdx := 0
	if values[1] > values[0] {
		majorIdx = 1
	}
	dirX := vectors.At(0, majorIdx)
	dirY := vectors.At(1, majorIdx)

	if cfg.EnhancedPCA {
		minVal, maxVal := values[0], values[1]
		if minVal > maxVal {
			minVal, maxVal = maxVal, minVal
		}
		stability := 1.0
		if maxVal > 1e-12 {
			stability = 1 - minVal/maxVal
		}
		if stability < cfg.DirectionStabilityThreshold {
			return Result{}
		}
	}

	// Project every pixel onto the principal axis and fit L* linearly
	// against that projection.
	proj := make([]float64, n)
	lums := make([]float64, n)
	minProj, maxProj := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		dx := float64(xs[i]) - meanX
		dy := float64(ys[i]) - meanY
		p := dx*dirX + dy*dirY
		proj[i] = p
		lums[i] = colors[i].L
		if p < minProj {
			minProj = p
		}
		if p > maxProj {
			maxProj = p
		}
	}
	if maxProj-minProj < 1e-9 {
		return Result{}
	}

	alpha, beta := stat.LinearRegression(proj, lums, nil, false)
	r2 := stat.RSquared(proj, lums, nil, alpha, beta)
	if r2 < cfg.RSquaredThreshold {
		return Result{UseGradient: false, RSquared: r2}
	}

	stops := buildStops(proj, colors, minProj, maxProj, cfg.MaxGradientStops)

	return Result{
		UseGradient: true,
		StartX:      meanX + dirX*minProj, StartY: meanY + dirY*minProj,
		EndX: meanX + dirX*maxProj, EndY: meanY + dirY*maxProj,
		Stops: stops, RSquared: r2,
	}
}


// buildStops bins pixels into maxStops evenly spaced offsets along the
// gradient axis and averages their Lab color, so each stop represents a
// real color from the region rather than an interpolated extreme.
func buildStops(proj []float64, colors []colorspace.Lab, minProj, maxProj float64, maxStops int) []Stop {
	if maxStops < 2 {
		maxStops = 2
	}
	span := maxProj - minProj
	sums := make([]colorspace.Lab, maxStops)
	counts := make([]int, maxStops)

	for i, p := range proj {
		bin := int((p - minProj) / span * float64(maxStops))
		if bin >= maxStops {
			bin = maxStops - 1
		}
		if bin < 0 {
			bin = 0
		}
		sums[bin].L += colors[i].L
		sums[bin].A += colors[i].A
		sums[bin].B += colors[i].B
		counts[bin]++
	}

	var stops []Stop
	for i := 0; i < maxStops; i++ {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		stops = append(stops, Stop{
			Offset: float64(i) / float64(maxStops-1),
			Color:  colorspace.Lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n},
		})
	}
	return stops
}
