package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats summarizes pass durations.
type Stats struct {
	Total      time.Duration `json:"total_ns"`
	Min        time.Duration `json:"min_ns"`
	Mean       time.Duration `json:"mean_ns"`
	Max        time.Duration `json:"max_ns"`
	NsPerPixel float64       `json:"ns_per_pixel"`
}

// Summarize computes Stats for passes over a film of pixels pixels.
// An empty slice yields zero Stats.
func Summarize(passes []time.Duration, pixels int) Stats {
	if len(passes) == 0 {
		return Stats{}
	}
	s := Stats{Min: passes[0], Max: passes[0]}
	for _, d := range passes {
		s.Total += d
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Mean = s.Total / time.Duration(len(passes))
	if pixels > 0 {
		s.NsPerPixel = float64(s.Mean.Nanoseconds()) / float64(pixels)
	}
	return s
}

// WriteReport writes the result as indented JSON.
func WriteReport(path string, res Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("bench: write report: %w", err)
	}
	return nil
}

// Summary renders a short human-readable report with grouped digits.
func Summary(res Result) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	pixels := res.Width * res.Height
	b.WriteString(p.Sprintf("Film: %dx%d (%d pixels), workload %s, workers %d\n",
		res.Width, res.Height, pixels, res.Workload, res.Workers))
	if len(res.Passes) == 0 {
		b.WriteString("Passes: none\n")
	} else {
		s := res.Stats
		b.WriteString(p.Sprintf("Passes: %d, total %v\n", len(res.Passes), s.Total.Round(time.Microsecond)))
		b.WriteString(p.Sprintf("  min %v  mean %v  max %v\n",
			s.Min.Round(time.Microsecond), s.Mean.Round(time.Microsecond), s.Max.Round(time.Microsecond)))
		b.WriteString(p.Sprintf("  %.2f ns/pixel, %d pixels/sec\n", s.NsPerPixel, pixelsPerSecond(s.Mean, pixels)))
	}
	b.WriteString(p.Sprintf("Output: %s (alpha=%s, %v)\n", res.Output, res.Alpha, res.ExportTime.Round(time.Microsecond)))
	if res.Preview != "" {
		b.WriteString(p.Sprintf("Preview: %s\n", res.Preview))
	}
	return b.String()
}

func pixelsPerSecond(mean time.Duration, pixels int) int64 {
	if mean <= 0 {
		return 0
	}
	return int64(float64(pixels) / mean.Seconds())
}
