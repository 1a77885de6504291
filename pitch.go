package tiler

import "math"

// strideAlignment is the row pitch alignment of linear surfaces in bytes.
const strideAlignment = 4

// divCeil returns ceil(n / d) for non-negative n and positive d.
func divCeil(n, d int) int {
	return (n + d - 1) / d
}

// alignUp rounds n up to a multiple of a.
func alignUp(n, a int) int {
	return divCeil(n, a) * a
}

// mulSize returns a*b for non-negative a and b, or false when the product
// does not fit in an int.
func mulSize(a, b int) (int, bool) {
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

// SurfaceStride returns the row pitch in bytes of a linear surface row.
func SurfaceStride(width, bytesPerPixel int) int {
	return alignUp(width*bytesPerPixel, strideAlignment)
}

// MipChainSize returns the size in bytes of a linear mip chain whose level 0
// is width x height. Each level halves both extents, clamped at 1.
// Levels below 1 count as a single level.
func MipChainSize(width, height, levels, bytesPerPixel int) int {
	levels = max(1, levels)
	size := 0
	for l := range levels {
		w := max(1, width>>l)
		h := max(1, height>>l)
		size += SurfaceStride(w, bytesPerPixel) * h
	}
	return size
}
