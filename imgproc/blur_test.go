package imgproc

import "testing"

func TestBlurFieldConstantFieldUnchanged(t *testing.T) {
	w, h := 5, 5
	data := make([]float32, w*h)
	for i := range data {
		data[i] = 0.5
	}
	out := blurField(data, w, h, 1.0)
	for i, v := range out {
		if v < data[i]-1e-6 || v > data[i]+1e-6 {
			t.Errorf("constant field should pass through blur unchanged at %d: got %v", i, v)
		}
	}
}

func TestBlurFieldEmptyInput(t *testing.T) {
	out := blurField(nil, 0, 0, 1.0)
	if len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %v", out)
	}
}

func TestBlurFieldSmoothsSharpEdge(t *testing.T) {
	w, h := 20, 20
	data := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= w/2 {
				data[y*w+x] = 1
			}
		}
	}
	out := blurField(data, w, h, 2.0)

	mid := out[10*w+w/2]
	if mid <= 0 || mid >= 1 {
		t.Errorf("expected the blurred edge to produce an intermediate value near the boundary, got %v", mid)
	}

	far := out[10*w+1]
	if far > 0.05 {
		t.Errorf("expected a point far from the edge to stay close to 0, got %v", far)
	}
}

func TestBlurFieldPreservesRange(t *testing.T) {
	w, h := 8, 8
	data := make([]float32, w*h)
	for i := range data {
		data[i] = float32(i%2) * 10
	}
	out := blurField(data, w, h, 1.0)
	for i, v := range out {
		if v < -1e-3 || v > 10+1e-3 {
			t.Errorf("blurred value %v at %d escaped the input's [0,10] range", v, i)
		}
	}
}
