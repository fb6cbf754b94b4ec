// cmd/inspect/main.go — print size and per-channel statistics of an exported film.
//
// Usage:
//
//	go run ./cmd/inspect /tmp/splat.tiff [x,y ...]
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"splat-bench/internal/export"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <image> [x,y ...]\n", os.Args[0])
		os.Exit(2)
	}

	img, format, err := export.Read(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("%s: %dx%d %s (%T)\n", os.Args[1], b.Dx(), b.Dy(), format, img)

	st := channelStats(img)
	for i, name := range []string{"R", "G", "B", "A"} {
		fmt.Printf("  %s: min=%.4f max=%.4f mean=%.4f\n", name, st.min[i], st.max[i], st.mean[i])
	}
	fmt.Printf("  opaque=%d/%d (%.0f%%)\n", st.opaque, st.total, 100*float64(st.opaque)/float64(max(st.total, 1)))

	// Also print requested pixels
	for _, arg := range os.Args[2:] {
		x, y, ok := parsePoint(arg)
		if !ok || x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
			fmt.Fprintf(os.Stderr, "Warning: skipping point %q\n", arg)
			continue
		}
		c := nrgba(img, b.Min.X+x, b.Min.Y+y)
		fmt.Printf("  Pixel(%d,%d): R=%.4f G=%.4f B=%.4f A=%.4f\n", x, y, c[0], c[1], c[2], c[3])
	}
}

type stats struct {
	min, max, mean [4]float64
	opaque, total  int
}

func channelStats(img image.Image) stats {
	b := img.Bounds()
	st := stats{min: [4]float64{1, 1, 1, 1}}
	var sum [4]float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgba(img, x, y)
			for i, v := range c {
				st.min[i] = min(st.min[i], v)
				st.max[i] = max(st.max[i], v)
				sum[i] += v
			}
			if c[3] == 1 {
				st.opaque++
			}
			st.total++
		}
	}
	if st.total == 0 {
		return stats{}
	}
	for i := range sum {
		st.mean[i] = sum[i] / float64(st.total)
	}
	return st
}

// nrgba returns the straight-alpha channels at (x, y) scaled to [0,1].
func nrgba(img image.Image, x, y int) [4]float64 {
	c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
	return [4]float64{
		float64(c.R) / 0xffff,
		float64(c.G) / 0xffff,
		float64(c.B) / 0xffff,
		float64(c.A) / 0xffff,
	}
}

func parsePoint(s string) (int, int, bool) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(xs))
	y, err2 := strconv.Atoi(strings.TrimSpace(ys))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}
