package main

import (
	"image"
	"image/color"
	"testing"
)

func TestChannelStats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 0})

	st := channelStats(img)
	if st.total != 2 || st.opaque != 1 {
		t.Errorf("total=%d opaque=%d", st.total, st.opaque)
	}
	if st.max[0] != 1 || st.min[0] != 0 || st.mean[0] != 0.5 {
		t.Errorf("R stats: min=%v max=%v mean=%v", st.min[0], st.max[0], st.mean[0])
	}
	if st.mean[3] != 0.5 {
		t.Errorf("A mean = %v", st.mean[3])
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		x, y int
		ok   bool
	}{
		{"3,4", 3, 4, true},
		{" 10 , 0", 10, 0, true},
		{"3", 0, 0, false},
		{"a,b", 0, 0, false},
	}
	for _, tc := range tests {
		x, y, ok := parsePoint(tc.in)
		if ok != tc.ok || x != tc.x || y != tc.y {
			t.Errorf("parsePoint(%q) = %d, %d, %v", tc.in, x, y, ok)
		}
	}
}
