// Command vectorize converts a raster image to SVG line-art, flat
// color layers, or stipple dots.
package main

import (
	"context"
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"golang.org/x/image/draw"

	"github.com/inkstroke/vectorize"
)

func main() {
	var (
		input     = flag.String("input", "", "input image path (PNG or JPEG)")
		output    = flag.String("output", "out.svg", "output SVG path")
		mode      = flag.String("mode", "color", "output mode: color, lineart, or dots")
		maxDim    = flag.Int("max-dimension", 0, "downscale the longer input dimension to this many pixels (0 disables)")
		blurSigma = flag.Float64("blur-sigma", 0, "Gaussian pre-blur sigma applied before tracing (0 disables)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf("decoding input: %v", err)
	}

	if *maxDim > 0 {
		src = downscale(src, *maxDim)
	}

	raster := vectorize.FromImage(src)

	var m vectorize.Mode
	switch *mode {
	case "color":
		m = vectorize.ModeColor
	case "lineart":
		m = vectorize.ModeLineArt
	case "dots":
		m = vectorize.ModeDots
	default:
		log.Fatalf("unknown -mode %q: want color, lineart, or dots", *mode)
	}

	cfg := vectorize.DefaultConfig()
	pre := vectorize.PreprocessConfig{BlurSigma: *blurSigma}

	out, err := vectorize.Convert(context.Background(), raster, m, cfg, pre)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("writing output: %v", err)
	}
	log.Printf("wrote %s (%dx%d, mode=%s)", *output, raster.Width, raster.Height, *mode)
}

// downscale resizes img so its longer dimension is at most maxDim,
// preserving aspect ratio, via golang.org/x/image/draw's
// CatmullRom-quality scaler.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
