package film

import (
	"errors"
	"fmt"
	"strings"
)

// AlphaMode decides what the exported alpha channel carries.
type AlphaMode int

const (
	// AlphaWeight exports the pixel weight as alpha (straight, not premultiplied).
	AlphaWeight AlphaMode = iota
	// AlphaOpaque exports alpha = 1 for every pixel.
	AlphaOpaque
)

var ErrUnknownAlphaMode = errors.New("film: unknown alpha mode")

func (m AlphaMode) String() string {
	switch m {
	case AlphaWeight:
		return "weight"
	case AlphaOpaque:
		return "opaque"
	}
	return fmt.Sprintf("AlphaMode(%d)", int(m))
}

// ParseAlphaMode accepts "weight" or "opaque"; empty means weight.
func ParseAlphaMode(s string) (AlphaMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weight":
		return AlphaWeight, nil
	case "opaque":
		return AlphaOpaque, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlphaMode, s)
}

// RGBA copies the film into a new flat slice, 4 floats per pixel,
// interleaved R,G,B,A in row-major order.
func (f *Film) RGBA(mode AlphaMode) []float32 {
	out := make([]float32, len(f.pixels)*4)
	for i, p := range f.pixels {
		o := out[i*4 : i*4+4 : i*4+4]
		o[0] = p.XYZ[0]
		o[1] = p.XYZ[1]
		o[2] = p.XYZ[2]
		if mode == AlphaOpaque {
			o[3] = 1
		} else {
			o[3] = p.Weight
		}
	}
	return out
}
