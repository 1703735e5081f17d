package imgproc

import (
	"math"

	"github.com/inkstroke/vectorize/internal/execpar"
)

// sobelX and sobelY are the standard 3x3 Sobel kernels, row-major.
var sobelX = [9]float32{-1, 0, 1, -2, 0, 2, -1, 0, 1}
var sobelY = [9]float32{-1, -2, -1, 0, 0, 0, 1, 2, 1}

// Luma converts an RGBA byte buffer to a normalized [0,1] luminance
// field using the Rec. 601 coefficients.
func Luma(width, height int, pix []uint8) *Field {
	f := NewField(width, height)
	execpar.Map(width*height, func(i int) struct{} {
		r := float32(pix[i*4+0]) / 255
		g := float32(pix[i*4+1]) / 255
		b := float32(pix[i*4+2]) / 255
		f.Data[i] = 0.299*r + 0.587*g + 0.114*b
		return struct{}{}
	})
	return f
}

// GradientAnalysis holds the per-pixel Sobel magnitude/direction and
// local-variance fields computed once per image.
type GradientAnalysis struct {
	Width, Height int
	Magnitude     []float32
	Direction     []float32
	Variance      []float32
}

// ComputeGradientAnalysis computes Sobel-based magnitude/direction and a
// radius-r local-variance field over the luma field. Border pixels
// replicate the nearest in-bounds sample. Constant-intensity regions
// yield magnitude=0 and variance=0.
//
// luma.Data is the package's normalized [0,1] convention, but dot
// placement's strength scoring is calibrated against 8-bit (0-255)
// gradient magnitude and variance, matching the source material's
// analysis over a byte grayscale image; samples are rescaled to that
// range before the Sobel/variance accumulation below.
func ComputeGradientAnalysis(luma *Field, varianceRadius int) *GradientAnalysis {
	w, h := luma.Width, luma.Height
	ga := &GradientAnalysis{
		Width: w, Height: h,
		Magnitude: make([]float32, w*h),
		Direction: make([]float32, w*h),
		Variance:  make([]float32, w*h),
	}

	const scale = 255

	execpar.Map(w*h, func(i int) struct{} {
		x, y := i%w, i/w
		var gx, gy float32
		for ky := 0; ky < 3; ky++ {
			for kx := 0; kx < 3; kx++ {
				v := luma.At(x+kx-1, y+ky-1) * scale
				k := ky*3 + kx
				gx += v * sobelX[k]
				gy += v * sobelY[k]
			}
		}
		ga.Magnitude[i] = float32(math.Sqrt(float64(gx*gx + gy*gy)))
		ga.Direction[i] = float32(math.Atan2(float64(gy), float64(gx)))
		return struct{}{}
	})

	r := varianceRadius
	if r <= 0 {
		r = 2
	}
	execpar.Map(w*h, func(i int) struct{} {
		x, y := i%w, i/w
		var sum, sumSq float32
		count := 0
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				v := luma.At(x+dx, y+dy) * scale
				sum += v
				sumSq += v * v
				count++
			}
		}
		mean := sum / float32(count)
		variance := sumSq/float32(count) - mean*mean
		if variance < 0 {
			variance = 0
		}
		ga.Variance[i] = variance
		return struct{}{}
	})

	return ga
}
