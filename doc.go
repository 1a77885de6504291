// Package tiler computes GPU memory layouts for 2D surfaces on tile-based
// rasterizers and converts pixel data into the hardware tile order.
//
// # Overview
//
// tiler targets VideoCore IV style hardware, where sampled textures are
// stored as 4 KiB tiles and everything the CPU touches, or the rasterizer
// renders into, is stored linearly with rows padded to the binning tile.
// It has two halves:
//
//   - The layout planner decides linear or tiled storage for a [Shape] and
//     computes padded extent, pitch, size and tile geometry ([Layout]).
//   - The swizzler rewrites linear row-major pixels into tile order
//     ([ConvertLinearToTiled]) and back ([ConvertTiledToLinear]).
//
// # Quick Start
//
//	shape := tiler.Shape{
//	    Dimension: tiler.DimensionTexture2D,
//	    Width:     64,
//	    Height:    64,
//	    MipLevels: 1,
//	    ArraySize: 1,
//	    Format:    gputypes.TextureFormatRGBA8Unorm,
//	    Usage:     tiler.UsageDefault,
//	    Bind:      tiler.BindShaderResource,
//	}
//
//	res, err := tiler.NewResource(shape)
//	if err != nil {
//	    return err
//	}
//	tiled, err := res.Upload(pixels, 64*4)
//
// # Tile order
//
// A 4K tile is four 1K sub-tiles, a sub-tile is sixteen 64 byte
// micro-tiles. Tile rows are scanned serpentine: even rows left to right,
// odd rows right to left, and odd rows also rotate the sub-tile order by
// 180 degrees. Tiles are packed in visiting order, so the output is not
// indexed by tile position.
//
// # Thread Safety
//
// Layout computation and conversion are pure functions over caller-owned
// buffers. Conversions of different buffers may run concurrently (see
// [ConvertBatch]); conversions into the same destination must be
// serialized by the caller.
package tiler
