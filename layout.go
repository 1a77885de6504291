package tiler

import (
	"fmt"
	"log/slog"
	"math"
)

// MaxTextureDimension is the largest texture width or height in pixels.
const MaxTextureDimension = 1 << 16

// LayoutKind selects how a surface is stored in memory.
type LayoutKind uint8

const (
	// LayoutLinear stores rows one after another, Pitch bytes apart.
	LayoutLinear LayoutKind = iota

	// LayoutTiled stores 4K tiles in serpentine order.
	LayoutTiled
)

// String returns a string representation of the layout kind.
func (k LayoutKind) String() string {
	switch k {
	case LayoutLinear:
		return "Linear"
	case LayoutTiled:
		return "Tiled"
	default:
		return "Unknown"
	}
}

// Layout is the memory layout of a surface.
//
// A Layout is computed in one step and replaced as a whole; it is never
// patched field by field.
type Layout struct {
	// Kind is the storage order.
	Kind LayoutKind

	// Class is the hardware format class.
	Class FormatClass

	// Width and Height are the padded extent in pixels.
	Width  int
	Height int

	// Pitch is the row pitch in bytes. Zero for tiled layouts.
	Pitch int

	// Size is the allocation size in bytes.
	Size int

	// TilesX and TilesY count the padding tiles: binning tiles for linear
	// textures, 4K tiles for tiled surfaces, zero for buffers.
	TilesX int
	TilesY int

	// TileWidthPixels and TileHeightPixels are the padding tile extent.
	TileWidthPixels  int
	TileHeightPixels int

	// Tile is the tile geometry. Only set for tiled layouts.
	Tile TileInfo
}

// ComputeLayout computes the memory layout of shape.
//
// class is the hardware class of the declared format (see ClassOf). It is
// ignored for buffers, which are always byte addressed.
func ComputeLayout(shape Shape, class FormatClass) (Layout, error) {
	if shape.Width < 0 || shape.Height < 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, shape.Width, shape.Height)
	}

	var (
		l   Layout
		err error
	)
	switch shape.Dimension {
	case DimensionBuffer:
		l, err = bufferLayout(shape)
	case DimensionTexture2D:
		l, err = texture2DLayout(shape, class)
	default:
		return Layout{}, fmt.Errorf("%w: %s", ErrUnsupportedDimension, shape.Dimension)
	}
	if err != nil {
		return Layout{}, err
	}

	Logger().Debug("tiler: layout computed",
		slog.String("dimension", shape.Dimension.String()),
		slog.String("kind", l.Kind.String()),
		slog.String("class", l.Class.String()),
		slog.Int("width", l.Width),
		slog.Int("height", l.Height),
		slog.Int("pitch", l.Pitch),
		slog.Int("size", l.Size))

	return l, nil
}

// bufferLayout lays out a raw buffer: one row of bytes.
func bufferLayout(s Shape) (Layout, error) {
	if s.Height != 1 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrInvalidBufferHeight, s.Height)
	}
	return Layout{
		Kind:   LayoutLinear,
		Class:  ClassByte1,
		Width:  s.Width,
		Height: 1,
		Pitch:  s.Width,
		Size:   s.Width,
	}, nil
}

// texture2DLayout lays out a 2D texture.
func texture2DLayout(s Shape, class FormatClass) (Layout, error) {
	if s.Width > MaxTextureDimension || s.Height > MaxTextureDimension {
		return Layout{}, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, s.Width, s.Height, MaxTextureDimension)
	}
	if !class.IsValid() {
		return Layout{}, fmt.Errorf("%w: class %d", ErrUnsupportedFormat, class)
	}

	kind, rule := chooseLayoutKind(s)
	Logger().Debug("tiler: layout rule applied",
		slog.String("rule", rule),
		slog.String("kind", kind.String()),
		slog.String("bind", s.Bind.String()),
		slog.String("usage", s.Usage.String()))

	if kind == LayoutTiled {
		return tiledLayout(s, class)
	}
	return linearLayout(s, class)
}

// linearLayout pads the surface to whole binning tiles.
func linearLayout(s Shape, class FormatClass) (Layout, error) {
	hw := ClassByte4
	if s.Bind&BindDepthStencil != 0 {
		hw = ClassByte4Depth
	}

	tilesX := max(1, divCeil(s.Width, BinningTilePixels))
	tilesY := max(1, divCeil(s.Height, BinningTilePixels))
	width := tilesX * BinningTilePixels
	height := tilesY * BinningTilePixels
	bytesPerPixel := class.BytesPerPixel()
	pitch := SurfaceStride(width, bytesPerPixel)

	// Lower levels add less than level 0 again.
	level0, ok := mulSize(pitch, height)
	if !ok || level0 > math.MaxInt/2 {
		return Layout{}, fmt.Errorf("%w: %dx%d overflows the allocation size", ErrInvalidDimensions, width, height)
	}

	return Layout{
		Kind:             LayoutLinear,
		Class:            hw,
		Width:            width,
		Height:           height,
		Pitch:            pitch,
		Size:             MipChainSize(width, height, s.MipLevels, bytesPerPixel),
		TilesX:           tilesX,
		TilesY:           tilesY,
		TileWidthPixels:  BinningTilePixels,
		TileHeightPixels: BinningTilePixels,
	}, nil
}

// tiledLayout pads the surface to whole 4K tiles.
func tiledLayout(s Shape, class FormatClass) (Layout, error) {
	if s.MipLevels > 1 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrUnsupportedMipLevels, s.MipLevels)
	}

	info := TileInfoForClass(class)
	if !info.Valid() {
		return Layout{}, fmt.Errorf("%w: %d bpp", ErrUnsupportedFormat, class.BitsPerPixel())
	}

	tilesX, tilesY := info.TileCount(s.Width, s.Height)
	tiles, ok := mulSize(tilesX, tilesY)
	size, ok2 := mulSize(tiles, info.TileSizeBytes())
	if !ok || !ok2 {
		return Layout{}, fmt.Errorf("%w: %dx%d tiles overflow the allocation size", ErrInvalidDimensions, tilesX, tilesY)
	}

	return Layout{
		Kind:             LayoutTiled,
		Class:            class,
		Width:            tilesX * info.TileWidthPixels,
		Height:           tilesY * info.TileHeightPixels,
		Size:             size,
		TilesX:           tilesX,
		TilesY:           tilesY,
		TileWidthPixels:  info.TileWidthPixels,
		TileHeightPixels: info.TileHeightPixels,
		Tile:             info,
	}, nil
}
