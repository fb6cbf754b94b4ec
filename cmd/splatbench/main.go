// cmd/splatbench/main.go — fill a film with a per-pixel function N times and
// write the last result to an image file.
//
// Usage:
//
//	go run ./cmd/splatbench [flags] [iterations]
//
// The iteration count defaults to 10. The output format follows the
// extension of -output (tiff, png, webp, tga, bmp).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"splat-bench/internal/bench"
	"splat-bench/internal/config"
	"splat-bench/internal/export"
	"splat-bench/internal/film"
	"splat-bench/internal/process"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	workload := flag.String("workload", "", "Pixel function: "+strings.Join(process.Names(), ", ")+" (default: bench)")
	output := flag.String("output", "", "Output image (default: "+config.DefaultOutput+"); channels are clipped to [0,1], so negative samples export as 0")
	width := flag.Int("width", 0, "Film width (default: 512)")
	height := flag.Int("height", 0, "Film height (default: 512)")
	workers := flag.Int("workers", 0, "Row workers per pass (default: 1)")
	alpha := flag.String("alpha", "", "Alpha channel source: weight or opaque (default: weight)")
	fresh := flag.Bool("fresh", false, "Allocate a new film for every pass")
	preview := flag.Int("preview", 0, "Also write a WebP preview with this edge length")
	report := flag.String("report", "", "Write a JSON timing report to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [iterations]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	iterations, err := parseIterations(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Iterations:  iterations,
		Width:       *width,
		Height:      *height,
		Workload:    *workload,
		Workers:     *workers,
		FreshFilm:   *fresh,
		Output:      *output,
		Alpha:       *alpha,
		PreviewSize: *preview,
		Report:      *report,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	alphaMode, err := film.ParseAlphaMode(cfg.Alpha)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d iterations\n", cfg.IterationCount())
	fmt.Println("------------------------------------------------------------")

	res, err := bench.Run(bench.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Iterations:  cfg.IterationCount(),
		Workload:    cfg.Workload,
		Workers:     cfg.Workers,
		FreshFilm:   cfg.FreshFilm,
		Output:      cfg.Output,
		Alpha:       alphaMode,
		PreviewSize: cfg.PreviewSize,
		PreviewPath: cfg.PreviewPath(),
		Report:      cfg.Report,
		Log:         os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, export.ErrUnsupportedFormat) {
			fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(export.Formats(), " "))
		}
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Print(bench.Summary(res))
	if cfg.Report != "" {
		fmt.Printf("Report: %s\n", cfg.Report)
	}
}

// parseIterations reads the optional positional iteration count.
// It returns nil when no count was given.
func parseIterations(args []string) (*int, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("expected at most one iteration count, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("iteration count must be a non-negative integer, got %q", args[0])
	}
	return &n, nil
}
