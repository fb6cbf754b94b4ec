package process

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"splat-bench/internal/film"
)

var ErrUnknownWorkload = errors.New("process: unknown workload")

// DefaultWorkload is the function timed when none is configured.
const DefaultWorkload = "bench"

// Sine returns sin(k*k*x*y) in the first channel with weight 1.
func Sine(k float64) Func {
	kk := k * k
	return func(x, y int) film.Pixel {
		return film.Pixel{
			XYZ:    [3]float32{float32(math.Sin(kk * float64(x) * float64(y))), 0, 0},
			Weight: 1,
		}
	}
}

// Waves returns sin(0.1x)*sin(0.1y) in the first channel with weight 1.
func Waves(x, y int) film.Pixel {
	return film.Pixel{
		XYZ:    [3]float32{float32(math.Sin(0.1*float64(x)) * math.Sin(0.1*float64(y))), 0, 0},
		Weight: 1,
	}
}

// Gradient maps x to the first channel and y to the second, both in [0,1].
func Gradient(w, h int) Func {
	sx, sy := 0.0, 0.0
	if w > 1 {
		sx = 1 / float64(w-1)
	}
	if h > 1 {
		sy = 1 / float64(h-1)
	}
	return func(x, y int) film.Pixel {
		return film.Pixel{
			XYZ:    [3]float32{float32(float64(x) * sx), float32(float64(y) * sy), 0},
			Weight: 1,
		}
	}
}

// workloads build a Func for a film of the given size.
var workloads = map[string]func(w, h int) Func{
	"bench":    func(int, int) Func { return Sine(0.03) },
	"boxes":    func(int, int) Func { return Sine(0.01) },
	"waves":    func(int, int) Func { return Waves },
	"gradient": Gradient,
}

// Lookup returns the named workload sized for a w*h film.
func Lookup(name string, w, h int) (Func, error) {
	if name == "" {
		name = DefaultWorkload
	}
	mk, ok := workloads[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownWorkload, name, Names())
	}
	return mk(w, h), nil
}

// Names lists the registered workloads in sorted order.
func Names() []string {
	names := make([]string, 0, len(workloads))
	for n := range workloads {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
