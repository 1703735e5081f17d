package quantize

import "github.com/inkstroke/vectorize/colorspace"

// LayerMask returns a boolean mask selecting every pixel whose nearest
// palette color is palette[index] and which falls within
// colorTolerance of it in RGB8 distance.
func LayerMask(w, h int, pix []uint8, palette []colorspace.RGB8, index int, colorTolerance float64) []bool {
	mask := make([]bool, w*h)
	target := palette[index]
	for i := 0; i < w*h; i++ {
		c := colorspace.RGB8{R: pix[i*4], G: pix[i*4+1], B: pix[i*4+2]}
		if NearestPaletteIndex(c, palette) == index && c.RGBDistance(target) <= colorTolerance {
			mask[i] = true
		}
	}
	return mask
}

// Despeckle removes connected foreground components smaller than
// minArea, using 4-connectivity flood fill to find components.
func Despeckle(mask []bool, w, h, minArea int) []bool {
	if minArea <= 1 {
		return mask
	}
	visited := make([]bool, len(mask))
	out := make([]bool, len(mask))
	var stack []int

	for start := 0; start < len(mask); start++ {
		if !mask[start] || visited[start] {
			continue
		}
		stack = append(stack[:0], start)
		visited[start] = true
		component := []int{start}

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%w, idx/w
			neighbors := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
			for _, n := range neighbors {
				nx, ny := n[0], n[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nidx := ny*w + nx
				if !mask[nidx] || visited[nidx] {
					continue
				}
				visited[nidx] = true
				stack = append(stack, nidx)
				component = append(component, nidx)
			}
		}

		if len(component) >= minArea {
			for _, idx := range component {
				out[idx] = true
			}
		}
	}
	return out
}
