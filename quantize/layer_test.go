package quantize

import (
	"testing"

	"github.com/inkstroke/vectorize/colorspace"
)

func TestNearestPaletteIndex(t *testing.T) {
	palette := []colorspace.RGB8{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	if got := NearestPaletteIndex(colorspace.RGB8{R: 10, G: 10, B: 10}, palette); got != 0 {
		t.Errorf("expected dark color nearest to black (index 0), got %d", got)
	}
	if got := NearestPaletteIndex(colorspace.RGB8{R: 240, G: 240, B: 240}, palette); got != 1 {
		t.Errorf("expected light color nearest to white (index 1), got %d", got)
	}
}

func TestLayerMask(t *testing.T) {
	w, h := 2, 1
	pix := []uint8{
		0, 0, 0, 255,
		255, 255, 255, 255,
	}
	palette := []colorspace.RGB8{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	mask := LayerMask(w, h, pix, palette, 0, 10)
	if !mask[0] || mask[1] {
		t.Errorf("expected mask [true,false], got %v", mask)
	}
}

func TestDespeckleRemovesSmallComponents(t *testing.T) {
	w, h := 5, 5
	mask := make([]bool, w*h)
	mask[0] = true // isolated single pixel
	mask[2*w+2] = true
	mask[2*w+3] = true
	mask[2*w+4] = true // a 3-pixel component

	out := Despeckle(mask, w, h, 3)
	if out[0] {
		t.Error("isolated single pixel should be despeckled away at minArea=3")
	}
	if !out[2*w+2] || !out[2*w+3] || !out[2*w+4] {
		t.Error("3-pixel component should survive at minArea=3")
	}
}

func TestDespeckleMinAreaOneIsNoOp(t *testing.T) {
	mask := []bool{true, false, true}
	out := Despeckle(mask, 3, 1, 1)
	for i := range mask {
		if out[i] != mask[i] {
			t.Errorf("minArea<=1 should return the mask unchanged, index %d: got %v want %v", i, out[i], mask[i])
		}
	}
}
