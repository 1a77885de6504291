package tiler

import (
	"fmt"
	"log/slog"
)

// ConvertLinearToTiled rewrites a linear row-major surface into hardware
// tile order.
//
// src holds tilesY*info.TileHeightPixels rows, rowStride bytes apart, each at
// least tilesX*info.TileWidthBytes long. The result is exactly
// tilesX*tilesY*info.TileSizeBytes() bytes.
//
// Tile rows are scanned in serpentine order: even rows left to right, odd
// rows right to left. Tiles are appended to the output in visiting order,
// not by tile index. Within a tile the four 1K sub-tiles are written in an
// order that depends on the parity of the tile row:
//
//	even row  [A D]   odd row  [C B]
//	          [B C]            [D A]
//
// where A, B, C, D is the output order.
func ConvertLinearToTiled(src []byte, rowStride int, info TileInfo, tilesX, tilesY int) ([]byte, error) {
	if err := validateTiles(info, rowStride, tilesX, tilesY); err != nil {
		return nil, err
	}
	dst := make([]byte, tilesX*tilesY*info.TileSizeBytes())
	if err := ConvertLinearToTiledInto(dst, src, rowStride, info, tilesX, tilesY); err != nil {
		return nil, err
	}

	Logger().Debug("tiler: converted linear to tiled",
		slog.Int("bpp", info.BitsPerPixel),
		slog.Int("tiles_x", tilesX),
		slog.Int("tiles_y", tilesY),
		slog.Int("bytes", len(dst)))

	return dst, nil
}

// ConvertLinearToTiledInto is ConvertLinearToTiled writing into dst.
// Bytes of dst past the tiled size are left untouched.
func ConvertLinearToTiledInto(dst, src []byte, rowStride int, info TileInfo, tilesX, tilesY int) error {
	if err := validateConversion(len(src), len(dst), rowStride, info, tilesX, tilesY); err != nil {
		return err
	}
	w := swizzler{info: info, stride: rowStride, linear: src, tiled: dst, toTiled: true}
	w.surface(tilesX, tilesY)
	return nil
}

// ConvertTiledToLinear is the inverse of ConvertLinearToTiled. It returns
// tilesY*info.TileHeightPixels rows of rowStride bytes; bytes between the
// end of the tile data and the end of each row are zero.
func ConvertTiledToLinear(src []byte, rowStride int, info TileInfo, tilesX, tilesY int) ([]byte, error) {
	if err := validateTiles(info, rowStride, tilesX, tilesY); err != nil {
		return nil, err
	}
	dst := make([]byte, rowStride*tilesY*info.TileHeightPixels)
	if err := ConvertTiledToLinearInto(dst, src, rowStride, info, tilesX, tilesY); err != nil {
		return nil, err
	}

	Logger().Debug("tiler: converted tiled to linear",
		slog.Int("bpp", info.BitsPerPixel),
		slog.Int("tiles_x", tilesX),
		slog.Int("tiles_y", tilesY),
		slog.Int("bytes", len(dst)))

	return dst, nil
}

// ConvertTiledToLinearInto is ConvertTiledToLinear writing into dst, a
// linear surface with rows rowStride bytes apart.
func ConvertTiledToLinearInto(dst, src []byte, rowStride int, info TileInfo, tilesX, tilesY int) error {
	if err := validateConversion(len(dst), len(src), rowStride, info, tilesX, tilesY); err != nil {
		return err
	}
	w := swizzler{info: info, stride: rowStride, linear: dst, tiled: src}
	w.surface(tilesX, tilesY)
	return nil
}

// LinearSize returns the number of bytes a linear buffer must hold to cover
// tilesX x tilesY tiles with the given row stride. The last row only needs
// to reach the end of the last tile.
func LinearSize(info TileInfo, rowStride, tilesX, tilesY int) int {
	if tilesX == 0 || tilesY == 0 {
		return 0
	}
	return (tilesY*info.TileHeightPixels-1)*rowStride + tilesX*info.TileWidthBytes
}

// validateTiles checks everything that does not depend on buffer lengths.
func validateTiles(info TileInfo, rowStride, tilesX, tilesY int) error {
	if !info.Valid() {
		return fmt.Errorf("%w: no tile geometry for %d bpp", ErrUnsupportedFormat, info.BitsPerPixel)
	}
	if tilesX < 0 || tilesY < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTileCount, tilesX, tilesY)
	}
	if rowStride < tilesX*info.TileWidthBytes {
		return fmt.Errorf("%w: %d < %d", ErrInvalidStride, rowStride, tilesX*info.TileWidthBytes)
	}
	return nil
}

// validateConversion checks that every offset the swizzler touches lies
// inside the linear and tiled buffers. After it succeeds the copy loops
// cannot go out of range.
func validateConversion(linearLen, tiledLen, rowStride int, info TileInfo, tilesX, tilesY int) error {
	if err := validateTiles(info, rowStride, tilesX, tilesY); err != nil {
		return err
	}
	if need := LinearSize(info, rowStride, tilesX, tilesY); linearLen < need {
		return fmt.Errorf("%w: linear buffer has %d bytes, need %d", ErrBufferTooSmall, linearLen, need)
	}
	if need := tilesX * tilesY * info.TileSizeBytes(); tiledLen < need {
		return fmt.Errorf("%w: tiled buffer has %d bytes, need %d", ErrBufferTooSmall, tiledLen, need)
	}
	return nil
}

// swizzler walks a surface in hardware order. Offsets into linear follow
// the tile geometry; the tiled cursor pos only ever advances, so tiled data
// is a packed stream in visiting order.
type swizzler struct {
	info    TileInfo
	stride  int
	linear  []byte
	tiled   []byte
	pos     int
	toTiled bool
}

// microTile moves one micro-tile: MicroTileHeight rows of
// MicroTileWidthBytes, rows stride apart on the linear side.
func (w *swizzler) microTile(off int) {
	n := w.info.MicroTileWidthBytes
	for range w.info.MicroTileHeight {
		if w.toTiled {
			copy(w.tiled[w.pos:w.pos+n], w.linear[off:off+n])
		} else {
			copy(w.linear[off:off+n], w.tiled[w.pos:w.pos+n])
		}
		w.pos += n
		off += w.stride
	}
}

// subTile moves one 1K sub-tile whose top-left byte is at off, row of
// micro-tiles by row of micro-tiles.
func (w *swizzler) subTile(off int) {
	for h := 0; h < w.info.SubTileHeightPixels; h += w.info.MicroTileHeight {
		row := off + h*w.stride
		for x := 0; x < w.info.SubTileWidthBytes; x += w.info.MicroTileWidthBytes {
			w.microTile(row + x)
		}
	}
}

// tile moves one 4K tile whose top-left byte is at off.
func (w *swizzler) tile(off int, oddRow bool) {
	down := w.stride * w.info.SubTileHeightPixels
	right := w.info.SubTileWidthBytes

	if oddRow {
		// [C B]
		// [D A]
		w.subTile(off + down + right)
		w.subTile(off + right)
		w.subTile(off)
		w.subTile(off + down)
		return
	}

	// [A D]
	// [B C]
	w.subTile(off)
	w.subTile(off + down)
	w.subTile(off + down + right)
	w.subTile(off + right)
}

// surface moves tilesX x tilesY tiles in serpentine order.
func (w *swizzler) surface(tilesX, tilesY int) {
	for k := range tilesY {
		rowOff := k * w.stride * w.info.TileHeightPixels
		if k&1 == 1 {
			for i := tilesX - 1; i >= 0; i-- {
				w.tile(rowOff+i*w.info.TileWidthBytes, true)
			}
			continue
		}
		for i := range tilesX {
			w.tile(rowOff+i*w.info.TileWidthBytes, false)
		}
	}
}
