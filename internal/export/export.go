package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrSize              = errors.New("export: pixel data does not match image size")
	ErrUnsupportedFormat = errors.New("export: unsupported format")
)

// encoders maps a lowercase file extension to its writer. 16-bit formats get
// the NRGBA64 image directly; 8-bit ones get it converted to NRGBA.
var encoders = map[string]func(w io.Writer, img *image.NRGBA64) error{
	".tiff": encodeTIFF,
	".tif":  encodeTIFF,
	".png": func(w io.Writer, img *image.NRGBA64) error {
		return png.Encode(w, img)
	},
	".webp": func(w io.Writer, img *image.NRGBA64) error {
		return nativewebp.Encode(w, To8(img), nil)
	},
	".tga": func(w io.Writer, img *image.NRGBA64) error {
		return tga.Encode(w, To8(img))
	},
	".bmp": func(w io.Writer, img *image.NRGBA64) error {
		return bmp.Encode(w, To8(img))
	},
}

func encodeTIFF(w io.Writer, img *image.NRGBA64) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Formats lists the supported file extensions.
func Formats() []string {
	exts := make([]string, 0, len(encoders))
	for e := range encoders {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// CheckFormat reports whether path has an extension Write can encode.
func CheckFormat(path string) error {
	if _, ok := encoders[strings.ToLower(filepath.Ext(path))]; !ok {
		return fmt.Errorf("%w: %s (have %s)", ErrUnsupportedFormat, path, strings.Join(Formats(), " "))
	}
	return nil
}

// Write encodes a flat R,G,B,A float buffer (row-major, 4 floats per pixel)
// to path. The format follows the file extension.
func Write(path string, width, height int, rgba []float32) error {
	if err := CheckFormat(path); err != nil {
		return err
	}
	enc := encoders[strings.ToLower(filepath.Ext(path))]

	img, err := Image(width, height, rgba)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := enc(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Image converts a flat float buffer to a 16-bit straight-alpha image.
// Channels are clamped to [0,1].
func Image(width, height int, rgba []float32) (*image.NRGBA64, error) {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d floats", ErrSize, width, height, len(rgba))
	}
	img := image.NewNRGBA64(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			si := (y*width + x) * 4
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: unit16(rgba[si]),
				G: unit16(rgba[si+1]),
				B: unit16(rgba[si+2]),
				A: unit16(rgba[si+3]),
			})
		}
	}
	return img, nil
}

// To8 narrows an image to 8 bits per channel, keeping straight alpha.
func To8(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	if n64, ok := src.(*image.NRGBA64); ok {
		// draw.Draw would premultiply and lose color under alpha 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := n64.NRGBA64At(x, y)
				dst.SetNRGBA(x, y, color.NRGBA{R: narrow(c.R), G: narrow(c.G), B: narrow(c.B), A: narrow(c.A)})
			}
		}
		return dst
	}
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// unit16 clips v to [0,1]; negative samples export as 0.
func unit16(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

func narrow(v uint16) uint8 {
	return uint8((uint32(v)*0xff + 0x7fff) / 0xffff)
}
