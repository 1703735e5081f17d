package imgproc

import (
	"math"

	"github.com/inkstroke/vectorize/internal/execpar"
)

// EtfConfig configures Edge Tangent Flow computation.
type EtfConfig struct {
	// Radius is the neighborhood radius used in iterative refinement.
	Radius int
	// Iters is the number of refinement iterations.
	Iters int
	// CoherencyTau is the threshold below which a pixel's tangent is
	// forced to the reference direction (1,0) and excluded from
	// contributing to its neighbors' refinement.
	CoherencyTau float32
	// Sigma is the Gaussian smoothing scale applied to the structure
	// tensor components before eigen-decomposition.
	Sigma float32
}

// DefaultEtfConfig returns the documented defaults: radius=4, iters=4,
// coherency_tau=0.2, sigma=1.0.
func DefaultEtfConfig() EtfConfig {
	return EtfConfig{Radius: 4, Iters: 4, CoherencyTau: 0.2, Sigma: 1.0}
}

type structureTensor struct {
	gxx, gxy, gyy float32
}

// ComputeETF computes the Edge Tangent Flow field for a luma field:
// structure tensor -> Gaussian smoothing -> eigen-decomposition ->
// iterative coherency-weighted refinement.
func ComputeETF(luma *Field, cfg EtfConfig) *EtfField {
	w, h := luma.Width, luma.Height

	gradX := make([]float32, w*h)
	gradY := make([]float32, w*h)
	execpar.Map(w*h, func(i int) struct{} {
		x, y := i%w, i/w
		var gx, gy float32
		for ky := 0; ky < 3; ky++ {
			for kx := 0; kx < 3; kx++ {
				v := luma.At(x+kx-1, y+ky-1)
				k := ky*3 + kx
				gx += v * sobelX[k]
				gy += v * sobelY[k]
			}
		}
		gradX[i] = gx
		gradY[i] = gy
		return struct{}{}
	})

	tensor := computeStructureTensor(gradX, gradY, w, h, cfg.Sigma)
	field := extractInitialTangents(tensor, w, h, cfg.CoherencyTau)
	refineETFField(field, cfg.Radius, cfg.Iters)
	return field
}

func computeStructureTensor(gradX, gradY []float32, w, h int, sigma float32) []structureTensor {
	size := w * h
	tensors := make([]structureTensor, size)
	execpar.Map(size, func(i int) struct{} {
		gx, gy := gradX[i], gradY[i]
		tensors[i] = structureTensor{gxx: gx * gx, gxy: gx * gy, gyy: gy * gy}
		return struct{}{}
	})
	gaussianSmoothTensor(tensors, w, h, sigma)
	return tensors
}

// gaussianSmoothTensor blurs each structure-tensor component as an
// independent isotropic field, via bild's Gaussian blur (see blur.go).
func gaussianSmoothTensor(tensors []structureTensor, w, h int, sigma float32) {
	size := w * h
	gxx := make([]float32, size)
	gxy := make([]float32, size)
	gyy := make([]float32, size)
	for i, t := range tensors {
		gxx[i], gxy[i], gyy[i] = t.gxx, t.gxy, t.gyy
	}

	gxx = blurField(gxx, w, h, sigma)
	gxy = blurField(gxy, w, h, sigma)
	gyy = blurField(gyy, w, h, sigma)

	for i := range tensors {
		tensors[i] = structureTensor{gxx: gxx[i], gxy: gxy[i], gyy: gyy[i]}
	}
}

func extractInitialTangents(tensors []structureTensor, w, h int, coherencyTau float32) *EtfField {
	field := NewEtfField(w, h)
	execpar.Map(w*h, func(i int) struct{} {
		t := tensors[i]
		trace := t.gxx + t.gyy
		det := t.gxx*t.gyy - t.gxy*t.gxy
		disc := trace*trace*0.25 - det
		if disc < 0 {
			disc = 0
		}
		disc = float32(math.Sqrt(float64(disc)))

		lambda1 := trace*0.5 + disc
		lambda2 := trace*0.5 - disc

		var coherency float32
		if lambda1+lambda2 > 1e-10 {
			coherency = (lambda1 - lambda2) / (lambda1 + lambda2)
			if coherency < 0 {
				coherency = 0
			}
		}
		finalCoherency := float32(0)
		if coherency > coherencyTau {
			finalCoherency = coherency
		}

		tx, ty := float32(1), float32(0)
		if finalCoherency > 0 && lambda1 > lambda2 && lambda1 > 1e-10 {
			var v1x, v1y float32
			if abs32(t.gxy) > 1e-10 {
				v1x = lambda1 - t.gyy
				v1y = t.gxy
			} else if t.gxx >= t.gyy {
				v1x, v1y = 1, 0
			} else {
				v1x, v1y = 0, 1
			}
			length := float32(math.Sqrt(float64(v1x*v1x + v1y*v1y)))
			if length > 1e-10 {
				// v1 is the gradient direction; the tangent runs along the
				// edge, perpendicular to it.
				tx, ty = -v1y/length, v1x/length
			}
		}

		field.Tx[i] = tx
		field.Ty[i] = ty
		field.Coherency[i] = finalCoherency
		return struct{}{}
	})
	return field
}

func refineETFField(field *EtfField, radius, iters int) {
	w, h := field.Width, field.Height
	size := w * h

	for iter := 0; iter < iters; iter++ {
		currTx := make([]float32, size)
		currTy := make([]float32, size)
		currCoherency := make([]float32, size)
		copy(currTx, field.Tx)
		copy(currTy, field.Ty)
		copy(currCoherency, field.Coherency)

		newTx := make([]float32, size)
		newTy := make([]float32, size)

		execpar.Map(size, func(i int) struct{} {
			x, y := i%w, i/w
			pixelCoherency := currCoherency[i]
			if pixelCoherency < 0.1 {
				newTx[i] = currTx[i]
				newTy[i] = currTy[i]
				return struct{}{}
			}

			pixelTx, pixelTy := currTx[i], currTy[i]
			var sumTx, sumTy, totalWeight float32

			r := radius
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := clampInt(x+dx, 0, w-1)
					ny := clampInt(y+dy, 0, h-1)
					nidx := ny*w + nx

					neighborCoherency := currCoherency[nidx]
					if neighborCoherency < 0.1 {
						continue
					}
					neighborTx, neighborTy := currTx[nidx], currTy[nidx]

					distance := float32(math.Sqrt(float64(dx*dx + dy*dy)))
					spatialWeight := float32(math.Exp(float64(-distance * distance / (2 * float32(radius) * float32(radius)))))

					dotProduct := pixelTx*neighborTx + pixelTy*neighborTy
					directionalWeight := abs32(dotProduct)

					weight := spatialWeight * directionalWeight * neighborCoherency

					alignedTx, alignedTy := neighborTx, neighborTy
					if dotProduct < 0 {
						alignedTx, alignedTy = -neighborTx, -neighborTy
					}

					sumTx += alignedTx * weight
					sumTy += alignedTy * weight
					totalWeight += weight
				}
			}

			if totalWeight > 1e-10 {
				avgTx := sumTx / totalWeight
				avgTy := sumTy / totalWeight
				length := float32(math.Sqrt(float64(avgTx*avgTx + avgTy*avgTy)))
				if length > 1e-10 {
					newTx[i] = avgTx / length
					newTy[i] = avgTy / length
				} else {
					newTx[i] = pixelTx
					newTy[i] = pixelTy
				}
			} else {
				newTx[i] = pixelTx
				newTy[i] = pixelTy
			}
			return struct{}{}
		})

		copy(field.Tx, newTx)
		copy(field.Ty, newTy)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
