// Package workspace provides a reusable scratch arena for the
// per-stage float32 buffers the image-processing pipeline allocates
// over and over (gradient fields, smoothing temporaries, edge
// responses). Reusing these buffers across pipeline runs avoids
// repeated large allocations when converting a batch of same-sized
// images.
package workspace

// Workspace holds a pool of reusable float32 and bool scratch slices;
// a request takes the first pooled slice with enough capacity. It is
// not safe for concurrent use by multiple goroutines.
type Workspace struct {
	floatBufs [][]float32
	boolBufs  [][]bool
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// FloatBuffer returns a float32 slice of exactly n elements, zeroed.
// It reuses a previously released buffer of sufficient capacity when
// one is available, to avoid repeated large allocations across runs.
func (w *Workspace) FloatBuffer(n int) []float32 {
	for i, buf := range w.floatBufs {
		if cap(buf) >= n {
			w.floatBufs = append(w.floatBufs[:i], w.floatBufs[i+1:]...)
			buf = buf[:n]
			for j := range buf {
				buf[j] = 0
			}
			return buf
		}
	}
	return make([]float32, n)
}

// BoolBuffer returns a bool slice of exactly n elements, zeroed,
// analogous to FloatBuffer.
func (w *Workspace) BoolBuffer(n int) []bool {
	for i, buf := range w.boolBufs {
		if cap(buf) >= n {
			w.boolBufs = append(w.boolBufs[:i], w.boolBufs[i+1:]...)
			buf = buf[:n]
			for j := range buf {
				buf[j] = false
			}
			return buf
		}
	}
	return make([]bool, n)
}

// Release returns a float32 buffer to the pool for reuse.
func (w *Workspace) Release(buf []float32) {
	w.floatBufs = append(w.floatBufs, buf)
}

// ReleaseBool returns a bool buffer to the pool for reuse.
func (w *Workspace) ReleaseBool(buf []bool) {
	w.boolBufs = append(w.boolBufs, buf)
}

// Reset drops every pooled buffer, releasing their backing memory.
func (w *Workspace) Reset() {
	w.floatBufs = nil
	w.boolBufs = nil
}
