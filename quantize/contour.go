package quantize

import "github.com/inkstroke/vectorize/geom"

// moore8 lists the 8 neighbor offsets in clockwise order starting from
// straight up, the order Moore-neighbor boundary tracing walks in.
var moore8 = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// TraceContours finds every connected foreground region in mask and
// returns one outer Polyline per region plus one hole Polyline for
// every fully enclosed background pocket within it. Hole contours have
// IsHole set and ParentIndex pointing at their enclosing outer contour.
func TraceContours(mask []bool, w, h int) []geom.Polyline {
	visited := make([]bool, len(mask))
	var contours []geom.Polyline

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !mask[idx] || visited[idx] {
				continue
			}
			if !isBorderPixel(mask, w, h, x, y, true) {
				continue
			}
			pts := traceBoundary(mask, w, h, x, y, true)
			markComponentVisited(mask, w, h, x, y, visited)
			parentIdx := len(contours)
			contours = append(contours, geom.Polyline{Points: pts, Closed: true, ParentIndex: -1})

			for _, hole := range findHoles(mask, w, h, x, y) {
				holePts := traceBoundary(mask, w, h, hole[0], hole[1], false)
				contours = append(contours, geom.Polyline{
					Points: holePts, Closed: true, IsHole: true, ParentIndex: parentIdx,
				})
			}
		}
	}
	return contours
}

func isBorderPixel(mask []bool, w, h, x, y int, foreground bool) bool {
	if at(mask, w, h, x, y) != foreground {
		return false
	}
	for _, n := range moore8 {
		if at(mask, w, h, x+n[0], y+n[1]) != foreground {
			return true
		}
	}
	return false
}

func at(mask []bool, w, h, x, y int) bool {
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	return mask[y*w+x]
}

// maxTraceSteps bounds how many boundary points traceBoundary will ever
// emit for a single contour, guarding against a pathological mask that
// never re-reaches its start pixel.
const maxTraceSteps = 1000

// cyclePeriod is how often, in traced points, traceBoundary re-checks
// for a repeat of its first 10 points — a cycle that the return-to-start
// stop alone would miss because the walk never lands on its start pixel
// again.
const cyclePeriod = 100

// traceBoundary walks the border of the connected region matching
// `foreground` at (startX, startY) using Moore-neighbor tracing. It
// stops the first time the walk re-enters the start pixel, whatever
// the direction it arrives from.
func traceBoundary(mask []bool, w, h, startX, startY int, foreground bool) []geom.Point {
	start := [2]int{startX, startY}
	pts := []geom.Point{{X: float64(startX), Y: float64(startY)}}

	backtrack := 7 // the direction we arrived from, initialized to "up-left"
	current := start
	firstStep := true

	for {
		found := false
		for step := 0; step < 8; step++ {
			dir := (backtrack + 1 + step) % 8
			n := moore8[dir]
			nx, ny := current[0]+n[0], current[1]+n[1]
			if at(mask, w, h, nx, ny) == foreground {
				current = [2]int{nx, ny}
				backtrack = (dir + 5) % 8 // neighbor direction we just came from, rotated to re-scan from
				found = true
				break
			}
		}
		if !found {
			break
		}
		if current == start && !firstStep {
			break
		}
		firstStep = false
		pts = append(pts, geom.Point{X: float64(current[0]), Y: float64(current[1])})
		if len(pts) >= maxTraceSteps {
			break
		}
		if len(pts) > 10 && len(pts)%cyclePeriod == 0 && repeatsFirst10(pts) {
			break
		}
	}
	return pts
}

// repeatsFirst10 reports whether the last 10 traced points are an exact
// repeat of the first 10, meaning the walk has settled into a cycle
// without landing back on start itself.
func repeatsFirst10(pts []geom.Point) bool {
	n := len(pts)
	for i := 0; i < 10; i++ {
		if pts[i] != pts[n-10+i] {
			return false
		}
	}
	return true
}

// markComponentVisited flood-fills the connected foreground region
// containing (x, y) as visited, so the outer scan loop in TraceContours
// does not re-trace it from a different starting pixel.
func markComponentVisited(mask []bool, w, h, x, y int, visited []bool) {
	start := y*w + x
	if visited[start] {
		return
	}
	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := idx%w, idx/w
		for _, n := range moore8 {
			nx, ny := cx+n[0], cy+n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if mask[nidx] && !visited[nidx] {
				visited[nidx] = true
				stack = append(stack, nidx)
			}
		}
	}
}

// findHoles locates one representative pixel per background pocket
// fully enclosed within the foreground component seeded at (seedX,
// seedY), confirming enclosure with a leftward ray cast rather than
// merely checking whether the pocket touches the image border (a
// pocket can avoid the border yet still leak out through a diagonal
// gap that 4-connected "touches border" checks would miss).
func findHoles(mask []bool, w, h, seedX, seedY int) [][2]int {
	visited := make(map[int]bool)
	var holes [][2]int

	minX, minY, maxX, maxY := componentBounds(mask, w, h, seedX, seedY)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			idx := y*w + x
			if mask[y*w+x] || visited[idx] {
				continue
			}
			if !isEnclosed(mask, w, h, x, y) {
				markBackgroundVisited(mask, w, h, x, y, visited)
				continue
			}
			holes = append(holes, [2]int{x, y})
			markBackgroundVisited(mask, w, h, x, y, visited)
		}
	}
	return holes
}

func componentBounds(mask []bool, w, h, x, y int) (minX, minY, maxX, maxY int) {
	minX, minY, maxX, maxY = x, y, x, y
	visited := make([]bool, w*h)
	stack := []int{y*w + x}
	visited[y*w+x] = true
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := idx%w, idx/w
		if cx < minX {
			minX = cx
		}
		if cx > maxX {
			maxX = cx
		}
		if cy < minY {
			minY = cy
		}
		if cy > maxY {
			maxY = cy
		}
		for _, n := range moore8 {
			nx, ny := cx+n[0], cy+n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if mask[nidx] && !visited[nidx] {
				visited[nidx] = true
				stack = append(stack, nidx)
			}
		}
	}
	if minX > 0 {
		minX--
	}
	if minY > 0 {
		minY--
	}
	if maxX < w-1 {
		maxX++
	}
	if maxY < h-1 {
		maxY++
	}
	return
}

// isEnclosed casts a ray from (x, y) to the left image edge, counting
// background-to-foreground transitions; an odd count means the ray
// exited through the foreground an odd number of times and so (x, y)
// lies inside it.
func isEnclosed(mask []bool, w, h, x, y int) bool {
	crossings := 0
	wasForeground := false
	for cx := x; cx >= 0; cx-- {
		fg := mask[y*w+cx]
		if fg && !wasForeground {
			crossings++
		}
		wasForeground = fg
	}
	return crossings%2 == 1
}

func markBackgroundVisited(mask []bool, w, h, x, y int, visited map[int]bool) {
	start := y*w + x
	if visited[start] {
		return
	}
	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := idx%w, idx/w
		offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, n := range offsets {
			nx, ny := cx+n[0], cy+n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if !mask[nidx] && !visited[nidx] {
				visited[nidx] = true
				stack = append(stack, nidx)
			}
		}
	}
}
