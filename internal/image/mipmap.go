package image

// MipmapChain holds level 0 of an image and its successively halved levels.
//
// Level n is max(1, w>>n) x max(1, h>>n), matching the extents linear
// surface layouts reserve for each mip level.
type MipmapChain struct {
	levels []*ImageBuf // Level 0 = original size
}

// GenerateMipmaps builds a chain of the given number of levels from src
// with a 2x2 box filter. The source becomes level 0 and is not copied.
// A levels value below 1 is treated as 1.
//
// Returns nil if src is nil or empty.
func GenerateMipmaps(src *ImageBuf, levels int) *MipmapChain {
	if src == nil || src.IsEmpty() {
		return nil
	}

	levels = max(1, levels)
	chain := &MipmapChain{levels: make([]*ImageBuf, levels)}
	chain.levels[0] = src
	for i := 1; i < levels; i++ {
		chain.levels[i] = downsample(chain.levels[i-1])
	}
	return chain
}

// FullChainLevels returns the number of levels down to 1x1.
func FullChainLevels(width, height int) int {
	n := 1
	for d := max(width, height); d > 1; d >>= 1 {
		n++
	}
	return n
}

// downsample creates a half-size version of src using a box filter.
func downsample(src *ImageBuf) *ImageBuf {
	srcW, srcH := src.Bounds()
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)

	dst, _ := NewImageBuf(dstW, dstH, src.Format())
	bpp := src.Format().BytesPerPixel()

	// Average channel bytes directly so every format keeps its own layout.
	for dy := range dstH {
		sy0 := dy * 2
		sy1 := min(sy0+1, srcH-1)
		for dx := range dstW {
			sx0 := dx * 2
			sx1 := min(sx0+1, srcW-1)

			p0 := src.PixelBytes(sx0, sy0)
			p1 := src.PixelBytes(sx1, sy0)
			p2 := src.PixelBytes(sx0, sy1)
			p3 := src.PixelBytes(sx1, sy1)
			out := dst.PixelBytes(dx, dy)
			for c := range bpp {
				sum := uint16(p0[c]) + uint16(p1[c]) + uint16(p2[c]) + uint16(p3[c])
				out[c] = byte(sum / 4)
			}
		}
	}

	return dst
}

// Level returns the mipmap at the specified level.
// Level 0 is the original image. Returns nil if level is out of range.
func (m *MipmapChain) Level(n int) *ImageBuf {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the total number of mipmap levels in the chain.
// Returns 0 if the chain is nil.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}
