// Package dots implements stipple/dot placement: background detection,
// per-pixel gradient-strength candidate scoring, greedy spatial-hash
// placement, and optional adaptive density regions. There is no
// Poisson-disk relaxation pass after placement.
package dots

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/inkstroke/vectorize/colorspace"
)

// BackgroundConfig configures the advanced, clustering-aware background
// detector.
type BackgroundConfig struct {
	Tolerance        float32
	SampleEdgePixels bool
	ClusterColors    bool
	NumClusters      int
	RandomSeed       uint64
	EdgeSampleRatio  float32
}

// DefaultBackgroundConfig returns tolerance=0.15, sample_edge_pixels=true,
// cluster_colors=true, num_clusters=3, random_seed=42,
// edge_sample_ratio=0.1.
func DefaultBackgroundConfig() BackgroundConfig {
	return BackgroundConfig{
		Tolerance: 0.15, SampleEdgePixels: true, ClusterColors: true,
		NumClusters: 3, RandomSeed: 42, EdgeSampleRatio: 0.1,
	}
}

func pixelAt(pix []uint8, w, x, y int) colorspace.RGB8 {
	i := (y*w + x) * 4
	return colorspace.RGB8{R: pix[i], G: pix[i+1], B: pix[i+2]}
}

// SampleEdgePixels collects Lab colors from a border strip of the image,
// sized by sampleRatio (clamped to at most half the image in each axis).
func SampleEdgePixels(w, h int, pix []uint8, sampleRatio float32) []colorspace.Lab {
	if w == 0 || h == 0 {
		return nil
	}
	sw := int(float32(w) * sampleRatio)
	if sw < 1 {
		sw = 1
	}
	if sw > w/2 {
		sw = w / 2
	}
	sh := int(float32(h) * sampleRatio)
	if sh < 1 {
		sh = 1
	}
	if sh > h/2 {
		sh = h / 2
	}

	var out []colorspace.Lab
	for y := 0; y < sh; y++ {
		for x := 0; x < w; x++ {
			out = append(out, pixelAt(pix, w, x, y).ToLab())
		}
	}
	for y := h - sh; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, pixelAt(pix, w, x, y).ToLab())
		}
	}
	for y := sh; y < h-sh; y++ {
		for x := 0; x < sw; x++ {
			out = append(out, pixelAt(pix, w, x, y).ToLab())
		}
		for x := w - sw; x < w; x++ {
			out = append(out, pixelAt(pix, w, x, y).ToLab())
		}
	}
	return out
}

// DetectBackgroundMaskSimple is the tolerance-based background detector:
// a pixel is background if its Lab distance to any edge-sampled color,
// DIVIDED BY 100, is within tolerance. This scale convention differs from
// DetectBackgroundAdvanced below; both are preserved as the reference
// implementation defines them rather than unified onto one scale.
func DetectBackgroundMaskSimple(w, h int, pix []uint8, tolerance float32) []bool {
	total := w * h
	if total == 0 {
		return nil
	}
	edgeColors := SampleEdgePixels(w, h, pix, 0.1)
	mask := make([]bool, total)
	if len(edgeColors) == 0 {
		return mask
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lab := pixelAt(pix, w, x, y).ToLab()
			idx := y*w + x
			for _, ec := range edgeColors {
				if float32(lab.Distance(ec))/100 <= tolerance {
					mask[idx] = true
					break
				}
			}
		}
	}
	return mask
}

// DetectBackgroundAdvanced detects background using edge sampling,
// optional k-means clustering of the sampled colors (or corner pixels
// when edge sampling is disabled), and a direct Lab-distance tolerance
// comparison — NOT divided by 100, unlike DetectBackgroundMaskSimple.
func DetectBackgroundAdvanced(w, h int, pix []uint8, cfg BackgroundConfig) []bool {
	total := w * h
	if total == 0 {
		return nil
	}

	var backgroundColors []colorspace.Lab
	if cfg.SampleEdgePixels {
		edgeColors := SampleEdgePixels(w, h, pix, cfg.EdgeSampleRatio)
		if len(edgeColors) == 0 {
			return make([]bool, total)
		}
		if cfg.ClusterColors && len(edgeColors) > cfg.NumClusters {
			backgroundColors = kmeansClusterLab(edgeColors, cfg.NumClusters, cfg.RandomSeed, 20)
		} else {
			backgroundColors = edgeColors
		}
	} else {
		backgroundColors = []colorspace.Lab{
			pixelAt(pix, w, 0, 0).ToLab(),
			pixelAt(pix, w, w-1, 0).ToLab(),
			pixelAt(pix, w, 0, h-1).ToLab(),
			pixelAt(pix, w, w-1, h-1).ToLab(),
		}
	}

	mask := make([]bool, total)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lab := pixelAt(pix, w, x, y).ToLab()
			idx := y*w + x
			for _, bg := range backgroundColors {
				if lab.Distance(bg) <= float64(cfg.Tolerance) {
					mask[idx] = true
					break
				}
			}
		}
	}
	return mask
}

// backgroundFallbackRatio is the fraction of an image that, if marked
// background, indicates the detector itself is unreliable for this
// image (e.g. a high-contrast scene where every large region matches
// one of the sampled background colors) rather than that the image is
// genuinely almost entirely background.
const backgroundFallbackRatio = 0.95

// exceedsBackgroundFallbackRatio reports whether more than
// backgroundFallbackRatio of mask is marked background.
func exceedsBackgroundFallbackRatio(mask []bool) bool {
	if len(mask) == 0 {
		return false
	}
	count := 0
	for _, b := range mask {
		if b {
			count++
		}
	}
	return float64(count)/float64(len(mask)) > backgroundFallbackRatio
}

type colorCluster struct {
	centroid colorspace.Lab
	members  []colorspace.Lab
}

// kmeansClusterLab clusters Lab colors deterministically given a seed,
// returning centroids sorted by member count (largest first).
func kmeansClusterLab(colors []colorspace.Lab, k int, seed uint64, maxIterations int) []colorspace.Lab {
	if len(colors) == 0 || k == 0 {
		return nil
	}
	if len(colors) <= k {
		out := make([]colorspace.Lab, len(colors))
		copy(out, colors)
		return out
	}

	var seedBytes [32]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	rng := rand.New(rand.NewChaCha8(seedBytes))

	clusters := make([]colorCluster, k)
	for i := range clusters {
		clusters[i] = colorCluster{centroid: colors[rng.IntN(len(colors))]}
	}

	for iter := 0; iter < maxIterations; iter++ {
		for i := range clusters {
			clusters[i].members = clusters[i].members[:0]
		}
		for _, c := range colors {
			minDist := math.Inf(1)
			best := 0
			for i, cl := range clusters {
				d := c.Distance(cl.centroid)
				if d < minDist {
					minDist = d
					best = i
				}
			}
			clusters[best].members = append(clusters[best].members, c)
		}

		converged := true
		for i := range clusters {
			if len(clusters[i].members) == 0 {
				continue
			}
			old := clusters[i].centroid
			var sl, sa, sb float64
			for _, m := range clusters[i].members {
				sl += m.L
				sa += m.A
				sb += m.B
			}
			n := float64(len(clusters[i].members))
			clusters[i].centroid = colorspace.Lab{L: sl / n, A: sa / n, B: sb / n}
			if old.Distance(clusters[i].centroid) > 0.1 {
				converged = false
			}
		}
		if converged {
			break
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		return len(clusters[i].members) > len(clusters[j].members)
	})

	out := make([]colorspace.Lab, len(clusters))
	for i, c := range clusters {
		out[i] = c.centroid
	}
	return out
}
