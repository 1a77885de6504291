package tiler

import (
	"math"
	"testing"
)

func TestSurfaceStride(t *testing.T) {
	tests := []struct {
		width, bpp int
		want       int
	}{
		{0, 4, 0},
		{1, 1, 4},
		{3, 1, 4},
		{5, 1, 8},
		{3, 2, 8},
		{64, 4, 256},
		{100, 4, 400},
	}
	for _, tt := range tests {
		if got := SurfaceStride(tt.width, tt.bpp); got != tt.want {
			t.Errorf("SurfaceStride(%d, %d) = %d, want %d", tt.width, tt.bpp, got, tt.want)
		}
	}
}

func TestMipChainSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h, levels, bp int
		want             int
	}{
		{"single level", 64, 64, 1, 4, 256 * 64},
		{"zero levels is one", 64, 64, 0, 4, 256 * 64},
		{"three levels", 64, 64, 3, 4, 256*64 + 128*32 + 64*16},
		{"clamped at 1x1", 4, 1, 4, 1, 4*1 + 4*1 + 4*1 + 4*1},
		{"non square", 128, 64, 2, 2, 256*64 + 128*32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MipChainSize(tt.w, tt.h, tt.levels, tt.bp); got != tt.want {
				t.Errorf("MipChainSize(%d, %d, %d, %d) = %d, want %d", tt.w, tt.h, tt.levels, tt.bp, got, tt.want)
			}
		})
	}
}

func TestAlignUp(t *testing.T) {
	for n := range 33 {
		got := alignUp(n, strideAlignment)
		if got%strideAlignment != 0 || got < n || got-n >= strideAlignment {
			t.Errorf("alignUp(%d, %d) = %d", n, strideAlignment, got)
		}
	}
}

func TestMulSize(t *testing.T) {
	tests := []struct {
		a, b   int
		want   int
		wantOK bool
	}{
		{0, math.MaxInt, 0, true},
		{4096, 2048 * 2048, 4096 * 2048 * 2048, true},
		{math.MaxInt / 2, 2, math.MaxInt - 1, true},
		{math.MaxInt/2 + 1, 2, 0, false},
		{math.MaxInt, math.MaxInt, 0, false},
	}
	for _, tt := range tests {
		got, ok := mulSize(tt.a, tt.b)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("mulSize(%d, %d) = %d, %v, want %d, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}
