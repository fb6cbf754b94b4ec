package film

import (
	"errors"
	"fmt"
)

// MaxPixels caps width*height so a bad size fails with an error instead of
// exhausting memory inside make.
const MaxPixels = 1 << 28

var (
	ErrInvalidSize = errors.New("film: width and height must be positive")
	ErrTooLarge    = errors.New("film: too many pixels")
)

// Pixel is one sample: three color/position channels plus a weight.
type Pixel struct {
	XYZ    [3]float32
	Weight float32
}

// Film holds the pixel grid as one flat row-major slice, len = W*H.
type Film struct {
	width  int
	height int
	pixels []Pixel
}

// New allocates a zeroed film of w*h pixels.
func New(w, h int) (*Film, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if w > MaxPixels/h {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, w, h, MaxPixels)
	}
	return &Film{
		width:  w,
		height: h,
		pixels: make([]Pixel, w*h),
	}, nil
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }
func (f *Film) Len() int    { return len(f.pixels) }

// Pixels returns the backing slice, row-major.
func (f *Film) Pixels() []Pixel { return f.pixels }

// SetPixel stores p at (x, y). Out-of-range coordinates panic.
func (f *Film) SetPixel(p Pixel, x, y int) {
	f.pixels[f.index(x, y)] = p
}

// At returns the pixel at (x, y). Out-of-range coordinates panic.
func (f *Film) At(x, y int) Pixel {
	return f.pixels[f.index(x, y)]
}

// Reset zeroes every pixel in place.
func (f *Film) Reset() {
	clear(f.pixels)
}

func (f *Film) index(x, y int) int {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic(fmt.Sprintf("film: pixel (%d,%d) out of range %dx%d", x, y, f.width, f.height))
	}
	return y*f.width + x
}
