package imgproc

import (
	"math"
	"testing"
)

func verticalEdgeLuma(w, h int) *Field {
	f := NewField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= w/2 {
				f.Set(x, y, 1)
			}
		}
	}
	return f
}

func TestComputeETFTangentsAreUnitLength(t *testing.T) {
	luma := verticalEdgeLuma(16, 16)
	field := ComputeETF(luma, DefaultEtfConfig())

	for i := range field.Tx {
		length := math.Sqrt(float64(field.Tx[i]*field.Tx[i] + field.Ty[i]*field.Ty[i]))
		if length < 0.99 || length > 1.01 {
			t.Fatalf("tangent at %d is not unit length: (%v,%v) len=%v", i, field.Tx[i], field.Ty[i], length)
		}
	}
}

func TestComputeETFConstantImageHasZeroCoherency(t *testing.T) {
	w, h := 10, 10
	luma := NewField(w, h)
	for i := range luma.Data {
		luma.Data[i] = 0.5
	}
	field := ComputeETF(luma, DefaultEtfConfig())
	for i, c := range field.Coherency {
		if c != 0 {
			t.Errorf("constant image should have zero coherency everywhere, got %v at %d", c, i)
		}
	}
}

func TestComputeETFVerticalEdgeTangentIsVertical(t *testing.T) {
	w, h := 16, 16
	luma := verticalEdgeLuma(w, h)
	field := ComputeETF(luma, DefaultEtfConfig())

	mid := field.Index(w/2, h/2)
	tx, ty := field.Tx[mid], field.Ty[mid]
	if math.Abs(float64(tx)) > 0.3 {
		t.Errorf("tangent along a vertical edge should run mostly vertically (tx~0), got tx=%v ty=%v", tx, ty)
	}
}

func TestExtractInitialTangentsBelowCoherencyTauIsZeroed(t *testing.T) {
	w, h := 4, 4
	tensors := make([]structureTensor, w*h)
	for i := range tensors {
		// a very weak, nearly isotropic tensor: low coherency.
		tensors[i] = structureTensor{gxx: 1e-8, gxy: 1e-9, gyy: 1e-8}
	}
	field := extractInitialTangents(tensors, w, h, 0.2)
	for i, c := range field.Coherency {
		if c != 0 {
			t.Errorf("expected coherency below tau to be zeroed, got %v at %d", c, i)
		}
	}
}

func TestRefineETFFieldPreservesLowCoherencyPixels(t *testing.T) {
	w, h := 6, 6
	field := NewEtfField(w, h)
	for i := range field.Tx {
		field.Tx[i], field.Ty[i] = 1, 0
		field.Coherency[i] = 0 // below the 0.1 refinement gate everywhere
	}
	before := append([]float32(nil), field.Tx...)
	refineETFField(field, 4, 4)
	for i := range field.Tx {
		if field.Tx[i] != before[i] {
			t.Errorf("zero-coherency pixel %d should be untouched by refinement, got %v want %v", i, field.Tx[i], before[i])
		}
	}
}

func TestGaussianSmoothTensorConstantUnchanged(t *testing.T) {
	w, h := 8, 8
	tensors := make([]structureTensor, w*h)
	for i := range tensors {
		tensors[i] = structureTensor{gxx: 2, gxy: 1, gyy: 3}
	}
	gaussianSmoothTensor(tensors, w, h, 1.0)
	for i, tv := range tensors {
		if math.Abs(float64(tv.gxx-2)) > 1e-3 || math.Abs(float64(tv.gyy-3)) > 1e-3 {
			t.Errorf("constant tensor field should be unchanged by smoothing at %d, got %+v", i, tv)
		}
	}
}
