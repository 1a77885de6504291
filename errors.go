package tiler

import "errors"

// Layout errors.
var (
	// ErrUnsupportedDimension is returned for 1D, 3D and cube resources.
	ErrUnsupportedDimension = errors.New("tiler: unsupported resource dimension")

	// ErrInvalidBufferHeight is returned for buffer resources whose height is not 1.
	ErrInvalidBufferHeight = errors.New("tiler: buffer height must be 1")

	// ErrUnsupportedFormat is returned when a declared format has no entry
	// in the format table, or when tile geometry is requested for an
	// unsupported bit depth.
	ErrUnsupportedFormat = errors.New("tiler: unsupported format")

	// ErrUnsupportedMipLevels is returned when a tiled surface asks for
	// more than one mip level.
	ErrUnsupportedMipLevels = errors.New("tiler: tiled surfaces support a single mip level")

	// ErrInvalidDimensions is returned for negative widths or heights.
	ErrInvalidDimensions = errors.New("tiler: invalid dimensions")
)

// Conversion errors.
var (
	// ErrBufferTooSmall is returned when a source or destination buffer
	// cannot hold the region a conversion touches.
	ErrBufferTooSmall = errors.New("tiler: buffer too small")

	// ErrInvalidStride is returned when a row stride is narrower than a
	// row of tiles.
	ErrInvalidStride = errors.New("tiler: row stride too small")

	// ErrInvalidTileCount is returned for negative tile counts.
	ErrInvalidTileCount = errors.New("tiler: invalid tile count")

	// ErrMipLevelCount is returned when a mip chain upload does not supply
	// one level per mip level of the resource.
	ErrMipLevelCount = errors.New("tiler: wrong number of mip levels")

	// ErrNotTiled is returned when a tiled conversion is requested for a
	// linear layout.
	ErrNotTiled = errors.New("tiler: layout is not tiled")
)

// Resource errors.
var (
	// ErrNotConstantBuffer is returned by constant buffer updates on other resources.
	ErrNotConstantBuffer = errors.New("tiler: resource is not a constant buffer")

	// ErrAlreadyMapped is returned by Map while a previous view is still held.
	ErrAlreadyMapped = errors.New("tiler: resource is already mapped")

	// ErrNotMapped is returned by Unmap without a matching Map.
	ErrNotMapped = errors.New("tiler: resource is not mapped")

	// ErrUnsupportedSubresource is returned when mapping resources with
	// several mip levels or array slices.
	ErrUnsupportedSubresource = errors.New("tiler: only single-subresource resources can be mapped")

	// ErrNilAllocation is returned when Map or Unmap needs an allocation
	// and none was given.
	ErrNilAllocation = errors.New("tiler: allocation is nil")
)
