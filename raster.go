package vectorize

import (
	"fmt"
	"image"
	"image/color"
)

// RasterImage is the module's input type: a packed RGBA byte buffer with
// explicit dimensions. Pix is 4 bytes per pixel, row-major, unpremultiplied.
type RasterImage struct {
	Width, Height int
	Pix           []uint8
}

// NewRasterImage allocates a zeroed RasterImage of the given dimensions.
func NewRasterImage(width, height int) *RasterImage {
	return &RasterImage{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// FromImage adapts a standard library image.Image into a RasterImage,
// converting through image.NRGBA so non-RGBA source formats (JPEG,
// indexed PNG) are normalized.
func FromImage(img image.Image) *RasterImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	ri := NewRasterImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			ri.Pix[i+0] = c.R
			ri.Pix[i+1] = c.G
			ri.Pix[i+2] = c.B
			ri.Pix[i+3] = c.A
		}
	}
	return ri
}

// At returns the RGBA bytes at (x, y), or (0,0,0,0) outside bounds.
func (r *RasterImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0, 0, 0, 0
	}
	i := (y*r.Width + x) * 4
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// Validate checks the dimensions and buffer length invariants required
// of every stage's input.
func (r *RasterImage) Validate() error {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: image has non-positive dimensions", ErrInvalidInput)
	}
	if len(r.Pix) != r.Width*r.Height*4 {
		return fmt.Errorf("%w: pixel buffer length %d does not match %dx%d", ErrInvalidInput, len(r.Pix), r.Width, r.Height)
	}
	return nil
}

// toNRGBA builds a standard library *image.NRGBA view of the buffer,
// the input format bild's blur functions expect.
func (r *RasterImage) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}
