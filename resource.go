package tiler

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ResourceOption configures a Resource during creation.
type ResourceOption func(*resourceOptions)

// resourceOptions holds optional configuration for Resource creation.
type resourceOptions struct {
	planner *Planner
}

// WithPlanner makes the resource compute its layouts with p instead of the
// shared default planner.
func WithPlanner(p *Planner) ResourceOption {
	return func(o *resourceOptions) {
		if p != nil {
			o.planner = p
		}
	}
}

// resourceState is the shape of a resource together with the layout
// computed from it. It is replaced as a unit.
type resourceState struct {
	shape  Shape
	layout Layout
}

// Resource is one surface: its shape, its current layout, and for constant
// buffers the system memory copy that shader constants are read from.
//
// Thread safety: Layout, Shape and Exchange may be called from any
// goroutine; a reader always sees a complete layout. Map, Unmap, Resize
// and UpdateConstantBuffer are serialized internally, but Upload output and
// mapped views belong to the caller.
type Resource struct {
	planner *Planner
	state   atomic.Pointer[resourceState]

	mu     sync.Mutex
	mapped bool
	sysMem []byte
}

// NewResource stands up a resource for shape and computes its layout.
func NewResource(shape Shape, opts ...ResourceOption) (*Resource, error) {
	o := resourceOptions{planner: defaultPlanner}
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := o.planner.Plan(shape)
	if err != nil {
		return nil, err
	}

	r := &Resource{planner: o.planner}
	r.state.Store(&resourceState{shape: shape, layout: layout})
	if shape.IsConstantBuffer() {
		r.sysMem = make([]byte, layout.Size)
	}
	return r, nil
}

// Shape returns the current shape.
func (r *Resource) Shape() Shape {
	return r.state.Load().shape
}

// Layout returns the current layout.
func (r *Resource) Layout() Layout {
	return r.state.Load().layout
}

// Resize changes the mip 0 extent and recomputes the layout from scratch.
// On error the resource keeps its previous shape and layout. A mapped
// resource cannot be resized.
func (r *Resource) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mapped {
		return ErrAlreadyMapped
	}

	shape := r.state.Load().shape.Resized(width, height)
	layout, err := r.planner.Plan(shape)
	if err != nil {
		return err
	}

	if shape.IsConstantBuffer() {
		mem := make([]byte, layout.Size)
		copy(mem, r.sysMem)
		r.sysMem = mem
	}
	r.state.Store(&resourceState{shape: shape, layout: layout})

	Logger().Debug("tiler: resource resized",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("size", layout.Size))
	return nil
}

// Box is a region of a resource in texels. Buffers only use Left and Right,
// which are byte offsets.
type Box struct {
	Left, Top, Front    int
	Right, Bottom, Back int
}

// UpdateConstantBuffer copies data into the system memory copy of a
// constant buffer.
//
// With a box, Right-Left bytes are written at Left. A box that starts
// before 0, ends past the buffer, or has Left > Right is skipped without
// error. Without a box, rowPitch bytes are written at 0, clamped to the
// buffer size; a zero rowPitch writes the whole buffer and a negative one
// fails with ErrInvalidStride.
func (r *Resource) UpdateConstantBuffer(box *Box, data []byte, rowPitch int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state.Load()
	if !st.shape.IsConstantBuffer() {
		return ErrNotConstantBuffer
	}
	size := st.layout.Size

	offset, n := 0, rowPitch
	switch {
	case box != nil:
		if box.Left < 0 || box.Left > size || box.Left > box.Right || box.Right > size {
			Logger().Warn("tiler: constant buffer update outside buffer skipped",
				slog.Int("left", box.Left),
				slog.Int("right", box.Right),
				slog.Int("size", size))
			return nil
		}
		offset, n = box.Left, box.Right-box.Left
	case n < 0:
		return fmt.Errorf("%w: row pitch %d", ErrInvalidStride, rowPitch)
	case n == 0:
		n = size
	default:
		n = min(n, size)
	}

	if len(data) < n {
		return fmt.Errorf("%w: update needs %d bytes, got %d", ErrBufferTooSmall, n, len(data))
	}

	copy(r.sysMem[offset:offset+n], data[:n])
	return nil
}

// ConstantData returns a copy of the system memory copy of a constant
// buffer, or nil for other resources.
func (r *Resource) ConstantData() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sysMem == nil {
		return nil
	}
	out := make([]byte, len(r.sysMem))
	copy(out, r.sysMem)
	return out
}

// Upload converts pixel data for mip 0 into the byte order of the
// allocation: tiled surfaces are swizzled, linear ones get their rows
// spaced Pitch bytes apart. The result is exactly Layout().Size bytes.
//
// src holds Shape().Height rows of Shape().Width pixels, rowStride bytes
// apart. When src is too small to cover the padded extent, padding pixels
// are zero.
func (r *Resource) Upload(src []byte, rowStride int) ([]byte, error) {
	st := r.state.Load()
	s, l := st.shape, st.layout

	bytesPerPixel, err := st.bytesPerPixel()
	if err != nil {
		return nil, err
	}
	rowBytes := s.Width * bytesPerPixel
	if err := checkSource(src, rowStride, rowBytes, s.Height); err != nil {
		return nil, err
	}

	if l.Kind == LayoutLinear {
		dst := make([]byte, l.Size)
		pitch := max(l.Pitch, rowBytes)
		for y := range s.Height {
			copy(dst[y*pitch:y*pitch+rowBytes], src[y*rowStride:y*rowStride+rowBytes])
		}
		return dst, nil
	}

	// The swizzler reads whole tiles; stage the source into a zero padded
	// surface unless it already covers them.
	padStride := l.TilesX * l.Tile.TileWidthBytes
	if rowStride < padStride || len(src) < LinearSize(l.Tile, rowStride, l.TilesX, l.TilesY) {
		staged := make([]byte, padStride*l.Height)
		for y := range s.Height {
			copy(staged[y*padStride:y*padStride+rowBytes], src[y*rowStride:y*rowStride+rowBytes])
		}
		src, rowStride = staged, padStride
	}

	return ConvertLinearToTiled(src, rowStride, l.Tile, l.TilesX, l.TilesY)
}

// MipLevel is the source of one mip level: rows rowStride bytes apart.
type MipLevel struct {
	Data      []byte
	RowStride int
}

// UploadMipChain converts a full mip chain into the byte order of a linear
// allocation. Level l is max(1, Width>>l) x max(1, Height>>l) texels and is
// placed after the previous levels of the padded chain, so the result is
// exactly Layout().Size bytes. levels must hold one entry per mip level.
//
// Tiled layouts have a single level, which is uploaded with Upload.
func (r *Resource) UploadMipChain(levels []MipLevel) ([]byte, error) {
	st := r.state.Load()
	s, l := st.shape, st.layout

	if len(levels) != max(1, s.MipLevels) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMipLevelCount, len(levels), max(1, s.MipLevels))
	}
	if l.Kind == LayoutTiled {
		return r.Upload(levels[0].Data, levels[0].RowStride)
	}

	bytesPerPixel, err := st.bytesPerPixel()
	if err != nil {
		return nil, err
	}

	dst := make([]byte, l.Size)
	offset := 0
	for i, level := range levels {
		w, h := max(1, s.Width>>i), max(1, s.Height>>i)
		pitch := SurfaceStride(max(1, l.Width>>i), bytesPerPixel)
		rowBytes := w * bytesPerPixel
		if err := checkSource(level.Data, level.RowStride, rowBytes, h); err != nil {
			return nil, fmt.Errorf("mip level %d: %w", i, err)
		}
		for y := range h {
			copy(dst[offset+y*pitch:offset+y*pitch+rowBytes], level.Data[y*level.RowStride:y*level.RowStride+rowBytes])
		}
		offset += pitch * max(1, l.Height>>i)
	}

	Logger().Debug("tiler: mip chain uploaded",
		slog.Int("levels", len(levels)),
		slog.Int("bytes", len(dst)))
	return dst, nil
}

// bytesPerPixel returns the source pixel size for uploads: the tile depth
// for tiled surfaces, the declared format for linear textures and one byte
// for buffers.
func (st *resourceState) bytesPerPixel() (int, error) {
	switch {
	case st.layout.Kind == LayoutTiled:
		return st.layout.Tile.BytesPerPixel(), nil
	case st.shape.Dimension == DimensionTexture2D:
		c, err := ClassOf(st.shape.Format)
		if err != nil {
			return 0, err
		}
		return c.BytesPerPixel(), nil
	default:
		return 1, nil
	}
}

// checkSource validates height rows of rowBytes, rowStride bytes apart.
// The last row only needs to reach its last pixel.
func checkSource(src []byte, rowStride, rowBytes, height int) error {
	if rowStride < 0 {
		return fmt.Errorf("%w: negative row stride %d", ErrInvalidStride, rowStride)
	}
	if rowStride < rowBytes {
		return fmt.Errorf("%w: %d < %d", ErrInvalidStride, rowStride, rowBytes)
	}
	if height > 0 {
		if need := (height-1)*rowStride + rowBytes; len(src) < need {
			return fmt.Errorf("%w: source has %d bytes, need %d", ErrBufferTooSmall, len(src), need)
		}
	}
	return nil
}
