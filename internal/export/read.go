package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// decoders mirrors encoders. TGA has no magic number, so decoding goes by
// extension rather than through image.Decode sniffing.
var decoders = map[string]func(r io.Reader) (image.Image, error){
	".tiff": tiff.Decode,
	".tif":  tiff.Decode,
	".png":  png.Decode,
	".webp": nativewebp.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
}

// Read decodes an image previously written by Write.
func Read(path string) (image.Image, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	img, err := dec(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("export: decode %s: %w", path, err)
	}
	return img, strings.TrimPrefix(ext, "."), nil
}
