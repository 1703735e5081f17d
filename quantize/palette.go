package quantize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/inkstroke/vectorize/colorspace"
)

type labCluster struct {
	centroid colorspace.Lab
	weight   float64
}

// ExtractPalette clusters the distinct colors present in an RGBA8
// buffer into at most numColors representative colors, weighting each
// distinct color by how many pixels use it so that dominant colors win
// out over rare anti-aliasing artifacts.
func ExtractPalette(w, h int, pix []uint8, numColors int, seed uint64) []colorspace.RGB8 {
	counts := make(map[colorspace.RGB8]int)
	for i := 0; i < w*h; i++ {
		c := colorspace.RGB8{R: pix[i*4], G: pix[i*4+1], B: pix[i*4+2]}
		counts[c]++
	}
	if len(counts) == 0 {
		return nil
	}

	type weighted struct {
		lab    colorspace.Lab
		rgb    colorspace.RGB8
		weight float64
	}
	samples := make([]weighted, 0, len(counts))
	for c, n := range counts {
		samples = append(samples, weighted{lab: c.ToLab(), rgb: c, weight: float64(n)})
	}
	// Map iteration order is random; fix the sample order (heaviest
	// first, then by RGB) so everything below is deterministic.
	sort.Slice(samples, func(i, j int) bool {
		a, b := samples[i], samples[j]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if a.rgb.R != b.rgb.R {
			return a.rgb.R < b.rgb.R
		}
		if a.rgb.G != b.rgb.G {
			return a.rgb.G < b.rgb.G
		}
		return a.rgb.B < b.rgb.B
	})

	if len(samples) <= numColors {
		out := make([]colorspace.RGB8, 0, len(samples))
		for _, s := range samples {
			out = append(out, s.rgb)
		}
		sort.SliceStable(out, func(i, j int) bool { return counts[out[i]] > counts[out[j]] })
		return out
	}

	clusters := make([]labCluster, numColors)
	for i := range clusters {
		// Evenly spaced samples rather than random draws: deterministic
		// without needing a seed, and it spreads initial centroids across
		// the sample population instead of risking duplicate picks.
		idx := i * len(samples) / numColors
		clusters[i].centroid = samples[idx].lab
	}

	assign := make([]int, len(samples))
	for iter := 0; iter < 15; iter++ {
		for i, s := range samples {
			best, bestDist := 0, math.Inf(1)
			for ci, cl := range clusters {
				d := s.lab.Distance(cl.centroid)
				if d < bestDist {
					bestDist = d
					best = ci
				}
			}
			assign[i] = best
		}

		memberL := make([][]float64, numColors)
		memberA := make([][]float64, numColors)
		memberB := make([][]float64, numColors)
		memberW := make([][]float64, numColors)
		for i, s := range samples {
			ci := assign[i]
			memberL[ci] = append(memberL[ci], s.lab.L)
			memberA[ci] = append(memberA[ci], s.lab.A)
			memberB[ci] = append(memberB[ci], s.lab.B)
			memberW[ci] = append(memberW[ci], s.weight)
		}

		converged := true
		for ci := range clusters {
			if len(memberL[ci]) == 0 {
				continue
			}
			newCentroid := colorspace.Lab{
				L: stat.Mean(memberL[ci], memberW[ci]),
				A: stat.Mean(memberA[ci], memberW[ci]),
				B: stat.Mean(memberB[ci], memberW[ci]),
			}
			totalWeight := stat.Mean(memberW[ci], nil) * float64(len(memberW[ci]))
			if newCentroid.Distance(clusters[ci].centroid) > 0.1 {
				converged = false
			}
			clusters[ci].centroid = newCentroid
			clusters[ci].weight = totalWeight
		}
		if converged {
			break
		}
	}

	// Represent each cluster by the sample color nearest its centroid,
	// so the emitted palette only ever contains colors the source image
	// actually had.
	nearest := make([]colorspace.RGB8, numColors)
	nearestDist := make([]float64, numColors)
	for i := range nearestDist {
		nearestDist[i] = math.Inf(1)
	}
	for i, s := range samples {
		ci := assign[i]
		d := s.lab.Distance(clusters[ci].centroid)
		if d < nearestDist[ci] {
			nearestDist[ci] = d
			nearest[ci] = s.rgb
		}
	}

	order := make([]int, numColors)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return clusters[order[i]].weight > clusters[order[j]].weight })

	out := make([]colorspace.RGB8, 0, numColors)
	seen := make(map[colorspace.RGB8]bool)
	for _, ci := range order {
		c := nearest[ci]
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// NearestPaletteIndex returns the index of the palette color closest
// to c in RGB8 distance.
func NearestPaletteIndex(c colorspace.RGB8, palette []colorspace.RGB8) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range palette {
		d := c.RGBDistance(p)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
