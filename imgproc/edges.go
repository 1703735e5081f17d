package imgproc

import (
	"math"

	"github.com/inkstroke/vectorize/internal/execpar"
)

// FdogConfig configures Flow-guided Difference of Gaussians.
type FdogConfig struct {
	SigmaS float32 // structure (smaller) Gaussian scale
	SigmaC float32 // context (larger) Gaussian scale
	Passes int
	Tau    float32
}

// DefaultFdogConfig returns sigma_s=1.2, sigma_c=2.0, passes=1, tau=0.90.
func DefaultFdogConfig() FdogConfig {
	return FdogConfig{SigmaS: 1.2, SigmaC: 2.0, Passes: 1, Tau: 0.90}
}

// XdogConfig configures Extended Difference of Gaussians.
type XdogConfig struct {
	Sigma   float32
	K       float32
	Phi     float32
	Epsilon float32
	Gamma   float32
}

// DefaultXdogConfig returns sigma=1.0, k=1.7, phi=10, epsilon=0, gamma=0.98.
func DefaultXdogConfig() XdogConfig {
	return XdogConfig{Sigma: 1.0, K: 1.7, Phi: 10, Epsilon: 0, Gamma: 0.98}
}

// NmsConfig configures non-maximum suppression and hysteresis
// thresholding of an edge response.
type NmsConfig struct {
	Low             float32
	High            float32
	SmoothBeforeNMS bool
	SmoothSigma     float32
}

// DefaultNmsConfig returns low=0.08, high=0.16, smooth_before_nms=true,
// smooth_sigma=0.8.
func DefaultNmsConfig() NmsConfig {
	return NmsConfig{Low: 0.08, High: 0.16, SmoothBeforeNMS: true, SmoothSigma: 0.8}
}

// EdgeResponse holds a per-pixel edge magnitude and orientation field.
type EdgeResponse struct {
	Width, Height int
	Magnitude     []float32
	Orientation   []float32
}

func newEdgeResponse(w, h int) *EdgeResponse {
	return &EdgeResponse{Width: w, Height: h, Magnitude: make([]float32, w*h), Orientation: make([]float32, w*h)}
}

// ComputeFDoG computes the Flow-guided Difference of Gaussians edge
// response. Each pass's contribution is accumulated as a running mean:
// (previous + max(0,dog)) / (pass+1) — this is exactly what the
// reference implementation computes, preserved here rather than
// resolved into a conventional weighted sum.
func ComputeFDoG(luma *Field, etf *EtfField, cfg FdogConfig) *EdgeResponse {
	w, h := luma.Width, luma.Height
	resp := newEdgeResponse(w, h)

	for pass := 0; pass < cfg.Passes; pass++ {
		gs := computeDirectionalGaussian(luma, etf, cfg.SigmaS)
		gc := computeDirectionalGaussian(luma, etf, cfg.SigmaC)
		passF := float32(pass)
		newMag := execpar.Map(w*h, func(i int) float32 {
			dog := gs[i] - cfg.Tau*gc[i]
			if dog < 0 {
				dog = 0
			}
			return (resp.Magnitude[i] + dog) / (passF + 1)
		})
		resp.Magnitude = newMag
	}

	execpar.Map(w*h, func(i int) struct{} {
		resp.Orientation[i] = float32(math.Atan2(float64(etf.Ty[i]), float64(etf.Tx[i])))
		return struct{}{}
	})
	return resp
}

// ComputeXDoG computes the Extended Difference of Gaussians edge
// response with soft thresholding and gamma correction.
func ComputeXDoG(luma *Field, etf *EtfField, cfg XdogConfig) *EdgeResponse {
	w, h := luma.Width, luma.Height
	g1 := computeDirectionalGaussian(luma, etf, cfg.Sigma)
	g2 := computeDirectionalGaussian(luma, etf, cfg.Sigma*cfg.K)

	resp := newEdgeResponse(w, h)
	execpar.Map(w*h, func(i int) struct{} {
		dog := g1[i] - g2[i]
		var xdog float32
		if dog < cfg.Epsilon {
			xdog = 1
		} else {
			xdog = 1 + float32(math.Tanh(float64(cfg.Phi*dog)))
		}
		final := float32(math.Pow(float64(xdog), float64(cfg.Gamma)))
		if final < 0 {
			final = 0
		}
		resp.Magnitude[i] = final
		resp.Orientation[i] = float32(math.Atan2(float64(etf.Ty[i]), float64(etf.Tx[i])))
		return struct{}{}
	})
	return resp
}

// computeDirectionalGaussian blurs luma along the ETF tangent direction
// at each pixel, sampling sub-pixel positions via bilinear interpolation.
// Low-coherency pixels fall back to their own value (no blur).
func computeDirectionalGaussian(luma *Field, etf *EtfField, sigma float32) []float32 {
	w, h := luma.Width, luma.Height
	kernelRadius := int(math.Ceil(float64(3 * sigma)))
	kernel := gaussianKernel1D(kernelRadius, sigma)

	return execpar.Map(w*h, func(i int) float32 {
		x, y := i%w, i/w
		tx, ty := etf.Tx[i], etf.Ty[i]
		coherency := etf.Coherency[i]

		if coherency < 0.1 {
			return luma.At(x, y)
		}

		var valueSum, weightSum float32
		for j, weight := range kernel {
			t := float32(j - kernelRadius)
			sx := float32(x) + t*tx
			sy := float32(y) + t*ty
			valueSum += sampleBilinear(luma, sx, sy) * weight
			weightSum += weight
		}
		if weightSum > 0 {
			return valueSum / weightSum
		}
		return luma.At(x, y)
	})
}

func gaussianKernel1D(radius int, sigma float32) []float32 {
	size := 2*radius + 1
	kernel := make([]float32, size)
	var sum float32
	for i := range kernel {
		x := float32(i - radius)
		kernel[i] = float32(math.Exp(float64(-0.5 * x * x / (sigma * sigma))))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// sampleBilinear reads a sub-pixel position from a Field, clamping to
// the field bounds.
func sampleBilinear(f *Field, x, y float32) float32 {
	w, h := float32(f.Width), float32(f.Height)
	if x < 0 {
		x = 0
	} else if x > w-1 {
		x = w - 1
	}
	if y < 0 {
		y = 0
	} else if y > h-1 {
		y = h - 1
	}

	x1 := int(math.Floor(float64(x)))
	y1 := int(math.Floor(float64(y)))
	x2 := x1 + 1
	if x2 > f.Width-1 {
		x2 = f.Width - 1
	}
	y2 := y1 + 1
	if y2 > f.Height-1 {
		y2 = f.Height - 1
	}

	fx := x - float32(x1)
	fy := y - float32(y1)

	p11 := f.At(x1, y1)
	p12 := f.At(x1, y2)
	p21 := f.At(x2, y1)
	p22 := f.At(x2, y2)

	top := p11*(1-fx) + p21*fx
	bottom := p12*(1-fx) + p22*fx
	return top*(1-fy) + bottom*fy
}

func sampleMagnitudeBilinear(mag []float32, w, h int, x, y float32) float32 {
	f := &Field{Width: w, Height: h, Data: mag}
	return sampleBilinear(f, x, y)
}

// ApplyNMS thins an edge response to near single-pixel width by
// suppressing responses that are not locally maximal along the
// gradient direction (perpendicular to the ETF tangent). Low-coherency
// pixels pass through unchanged.
func ApplyNMS(resp *EdgeResponse, etf *EtfField, cfg NmsConfig) []float32 {
	w, h := resp.Width, resp.Height

	smoothed := resp.Magnitude
	if cfg.SmoothBeforeNMS {
		smoothed = isotropicGaussianSmooth(resp.Magnitude, w, h, cfg.SmoothSigma)
	}

	return execpar.Map(w*h, func(i int) float32 {
		x, y := i%w, i/w
		magnitude := smoothed[i]
		if magnitude < cfg.Low {
			return 0
		}

		tx, ty := etf.Tx[i], etf.Ty[i]
		coherency := etf.Coherency[i]
		if coherency < 0.1 {
			return magnitude
		}

		gx, gy := -ty, tx
		n1 := sampleMagnitudeBilinear(smoothed, w, h, float32(x)+gx, float32(y)+gy)
		n2 := sampleMagnitudeBilinear(smoothed, w, h, float32(x)-gx, float32(y)-gy)

		if magnitude >= n1 && magnitude >= n2 {
			return magnitude
		}
		return 0
	})
}

// isotropicGaussianSmooth applies a plain isotropic Gaussian blur to a
// flat float32 field (used for NMS pre-smoothing, unlike the directional,
// ETF-guided Gaussian in computeDirectionalGaussian above), via bild
// (see blur.go).
func isotropicGaussianSmooth(data []float32, w, h int, sigma float32) []float32 {
	return blurField(data, w, h, sigma)
}

// HysteresisThreshold produces a binary edge map from an NMS result:
// pixels reachable from a strong seed (>=high) through a chain of
// weak-or-stronger (>=low) 8-connected neighbors are kept.
func HysteresisThreshold(nms []float32, w, h int, low, high float32) []float32 {
	result := make([]float32, len(nms))
	visited := make([]bool, len(nms))

	type coord struct{ x, y int }
	var queue []coord

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if nms[idx] < high || visited[idx] {
				continue
			}
			visited[idx] = true
			result[idx] = 1
			queue = append(queue[:0], coord{x, y})

			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := c.x+dx, c.y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if !visited[nidx] && nms[nidx] >= low {
							visited[nidx] = true
							result[nidx] = 1
							queue = append(queue, coord{nx, ny})
						}
					}
				}
			}
		}
	}
	return result
}
