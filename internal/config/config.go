package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splat-bench/internal/export"
)

const (
	DefaultWidth      = 512
	DefaultHeight     = 512
	DefaultIterations = 10
	DefaultWorkers    = 1
	DefaultWorkload   = "bench"
	DefaultAlpha      = "weight"
)

// DefaultOutput is where the final film lands when nothing else is configured.
// Every supported format stores channels clipped to [0,1].
var DefaultOutput = filepath.Join(os.TempDir(), "splat.tiff")

// Config holds all benchmark settings.
type Config struct {
	// Film
	Width  int `json:"width"`
	Height int `json:"height"`

	// Run
	Iterations *int   `json:"iterations,omitempty"`
	Workload   string `json:"workload"`
	Workers    int    `json:"workers"`
	FreshFilm  bool   `json:"fresh_film"`

	// Output
	Output      string `json:"output"`
	Alpha       string `json:"alpha"`
	PreviewSize int    `json:"preview_size"`
	Report      string `json:"report"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI values that override config file settings.
// Iterations is nil when no count was given on the command line.
type Flags struct {
	Iterations  *int
	Width       int
	Height      int
	Workload    string
	Workers     int
	FreshFilm   bool
	Output      string
	Alpha       string
	PreviewSize int
	Report      string
}

// Resolve applies flag overrides and fills the remaining zero fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Iterations != nil {
		n := *flags.Iterations
		c.Iterations = &n
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workload != "" {
		c.Workload = flags.Workload
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.FreshFilm {
		c.FreshFilm = true
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Alpha != "" {
		c.Alpha = flags.Alpha
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Report != "" {
		c.Report = flags.Report
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Iterations == nil {
		n := DefaultIterations
		c.Iterations = &n
	}
	if c.Workload == "" {
		c.Workload = DefaultWorkload
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Alpha == "" {
		c.Alpha = DefaultAlpha
	}
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Iterations != nil && *c.Iterations < 0 {
		return fmt.Errorf("config: iterations must be >= 0, got %d", *c.Iterations)
	}
	if c.PreviewSize < 0 {
		return fmt.Errorf("config: preview_size must be >= 0, got %d", c.PreviewSize)
	}
	if c.Output != "" {
		if filepath.Ext(c.Output) == "" {
			return fmt.Errorf("config: output %q has no file extension", c.Output)
		}
		if err := export.CheckFormat(c.Output); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// PreviewPath derives the preview file name from the output path.
func (c *Config) PreviewPath() string {
	ext := filepath.Ext(c.Output)
	return strings.TrimSuffix(c.Output, ext) + ".preview.webp"
}

// IterationCount returns the resolved number of passes.
func (c *Config) IterationCount() int {
	if c.Iterations == nil {
		return DefaultIterations
	}
	return *c.Iterations
}
