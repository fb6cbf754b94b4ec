package bench

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"splat-bench/internal/export"
	"splat-bench/internal/film"
	"splat-bench/internal/postprocess"
	"splat-bench/internal/process"

	"github.com/HugoSmits86/nativewebp"
)

// ProgressInterval is how often a running benchmark reports its pass rate.
var ProgressInterval = 2 * time.Second

// Config holds everything a single benchmark run needs.
type Config struct {
	Width      int
	Height     int
	Iterations int
	Workload   string
	Workers    int
	FreshFilm  bool

	Output      string
	Alpha       film.AlphaMode
	PreviewSize int
	PreviewPath string
	Report      string

	// Log receives progress lines; nil discards them.
	Log io.Writer
}

// Result holds the outcome of one run.
type Result struct {
	Workload   string          `json:"workload"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Iterations int             `json:"iterations"`
	Workers    int             `json:"workers"`
	FreshFilm  bool            `json:"fresh_film"`
	Alpha      string          `json:"alpha"`
	Passes     []time.Duration `json:"passes_ns"`
	Stats      Stats           `json:"stats"`
	Output     string          `json:"output"`
	Preview    string          `json:"preview,omitempty"`
	ExportTime time.Duration   `json:"export_ns"`

	Film *film.Film `json:"-"`
}

// Run allocates the film, runs every pass, and exports the final buffer.
func Run(cfg Config) (Result, error) {
	log := cfg.Log
	if log == nil {
		log = io.Discard
	}
	res := Result{
		Workload:   cfg.Workload,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Iterations: cfg.Iterations,
		Workers:    max(cfg.Workers, 1),
		FreshFilm:  cfg.FreshFilm,
		Alpha:      cfg.Alpha.String(),
		Output:     cfg.Output,
	}
	if cfg.Iterations < 0 {
		return res, fmt.Errorf("bench: negative iteration count %d", cfg.Iterations)
	}

	if err := export.CheckFormat(cfg.Output); err != nil {
		return res, err
	}

	fn, err := process.Lookup(cfg.Workload, cfg.Width, cfg.Height)
	if err != nil {
		return res, err
	}

	f, err := film.New(cfg.Width, cfg.Height)
	if err != nil {
		return res, fmt.Errorf("bench: allocate film: %w", err)
	}

	res.Passes = make([]time.Duration, 0, cfg.Iterations)
	var passes atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := passes.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					fmt.Fprintf(log, "  [%d/%d] %.1f passes/sec\n", p, cfg.Iterations, rate)
				}
			}
		}
	}()

	for i := 0; i < cfg.Iterations; i++ {
		if cfg.FreshFilm && i > 0 {
			if f, err = film.New(cfg.Width, cfg.Height); err != nil {
				close(done)
				<-stopped
				return res, fmt.Errorf("bench: allocate film: %w", err)
			}
		}
		t0 := time.Now()
		process.ProcessParallel(f, fn, cfg.Workers)
		res.Passes = append(res.Passes, time.Since(t0))
		passes.Add(1)
	}
	close(done)
	<-stopped

	res.Stats = Summarize(res.Passes, f.Len())
	res.Film = f

	t0 := time.Now()
	rgba := f.RGBA(cfg.Alpha)
	if err := export.Write(cfg.Output, cfg.Width, cfg.Height, rgba); err != nil {
		return res, err
	}
	res.ExportTime = time.Since(t0)

	if cfg.PreviewSize > 0 && cfg.PreviewPath != "" {
		img, err := export.Image(cfg.Width, cfg.Height, rgba)
		if err != nil {
			return res, err
		}
		if err := writePreview(cfg.PreviewPath, postprocess.Preview(img, cfg.PreviewSize)); err != nil {
			return res, err
		}
		res.Preview = cfg.PreviewPath
	}

	if cfg.Report != "" {
		if err := WriteReport(cfg.Report, res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func writePreview(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("bench: preview encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("bench: %w", err)
	}
	return nil
}
