package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA64) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA64(x, y, c)
		}
	}
	return img
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		w, h, size   int
		wantW, wantH int
	}{
		{512, 512, 128, 128, 128},
		{512, 256, 128, 128, 64},
		{100, 400, 50, 12, 50},
		{32, 32, 128, 32, 32},
		{64, 64, 0, 64, 64},
		{1000, 1, 10, 10, 1},
	}
	for _, tc := range tests {
		src := solid(tc.w, tc.h, color.NRGBA64{R: 0xffff, A: 0xffff})
		got := Preview(src, tc.size).Bounds()
		if got.Dx() != tc.wantW || got.Dy() != tc.wantH {
			t.Errorf("Preview(%dx%d, %d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.size, got.Dx(), got.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestPreviewKeepsColorUnderAlpha(t *testing.T) {
	src := solid(64, 64, color.NRGBA64{R: 0xcccc, G: 0x3333, A: 0x8000})
	dst := Preview(src, 16)
	c := dst.NRGBAAt(8, 8)
	if d := int(c.R) - 0xcc; d < -2 || d > 2 {
		t.Errorf("R = %#x, want about 0xcc", c.R)
	}
	if d := int(c.G) - 0x33; d < -2 || d > 2 {
		t.Errorf("G = %#x, want about 0x33", c.G)
	}
	if d := int(c.A) - 0x80; d < -1 || d > 1 {
		t.Errorf("A = %#x, want about 0x80", c.A)
	}
}

func TestPreviewTransparentStaysBlack(t *testing.T) {
	dst := Preview(solid(8, 8, color.NRGBA64{}), 4)
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}
