package imgproc

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// blurField applies an isotropic separable Gaussian blur to a flat
// float32 field via bild, which only operates on image.Image: the
// field is normalized into an 8-bit grayscale image, blurred, then
// denormalized back into float32. This round trip is only used for the
// isotropic passes (structure-tensor smoothing, NMS pre-smoothing);
// the ETF-tangent-guided directional Gaussian in edges.go samples along
// a per-pixel direction that has no image.Image equivalent and stays
// hand-rolled.
func blurField(data []float32, w, h int, sigma float32) []float32 {
	if len(data) == 0 {
		return data
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span < 1e-12 {
		out := make([]float32, len(data))
		copy(out, data)
		return out
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range data {
		gray.Pix[i] = uint8((v - lo) / span * 255)
	}

	blurred := blur.Gaussian(gray, float64(sigma))

	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := blurred.At(x, y).RGBA()
			norm := float32(r>>8) / 255
			out[y*w+x] = lo + norm*span
		}
	}
	return out
}
