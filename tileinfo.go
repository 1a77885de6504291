package tiler

// Tiled surfaces are stored as 4 KiB tiles. Each tile is a 2x2 arrangement
// of 1 KiB sub-tiles, and each sub-tile is a 4x4 arrangement of 64 byte
// micro-tiles. Micro-tile shape depends on the bit depth:
//
//	bpp  micro-tile        1K sub-tile   4K tile
//	  8  8 bytes x 8 rows  32x32 px      64x64 px
//	 16  16 bytes x 4 rows 32x16 px      64x32 px
//	 32  16 bytes x 4 rows 16x16 px      32x32 px
const (
	tileSizeBytes      = 4096
	subTileSizeBytes   = 1024
	microTileSizeBytes = 64

	microTileWidthBytes8bpp  = 8
	microTileHeight8bpp      = 8
	subTileWidth8bpp         = 32
	subTileHeight8bpp        = 32
	microTileWidthBytes16bpp = 16
	microTileHeight16bpp     = 4
	subTileWidth16bpp        = 32
	subTileHeight16bpp       = 16
	microTileWidthBytes32bpp = 16
	microTileHeight32bpp     = 4
	subTileWidth32bpp        = 16
	subTileHeight32bpp       = 16
)

// BinningTilePixels is the edge of the square binning tile that linear
// surfaces are padded to.
const BinningTilePixels = 64

// TileInfo is the tile geometry for one bit depth.
type TileInfo struct {
	// BitsPerPixel is the bit depth the geometry was built for.
	BitsPerPixel int

	// SubTileWidthPixels and SubTileHeightPixels are the 1K sub-tile extent.
	SubTileWidthPixels  int
	SubTileHeightPixels int

	// SubTileWidthBytes is one sub-tile row in bytes.
	SubTileWidthBytes int

	// MicroTileWidthBytes is one micro-tile row in bytes.
	MicroTileWidthBytes int

	// MicroTileHeight is the number of rows in a micro-tile.
	MicroTileHeight int

	// TileWidthPixels and TileHeightPixels are the 4K tile extent.
	TileWidthPixels  int
	TileHeightPixels int

	// TileWidthBytes is one 4K tile row in bytes.
	TileWidthBytes int
}

// tileInfoTable holds the geometry for the supported bit depths.
var tileInfoTable = map[int]TileInfo{
	8:  buildTileInfo(8, subTileWidth8bpp, subTileHeight8bpp, microTileWidthBytes8bpp, microTileHeight8bpp),
	16: buildTileInfo(16, subTileWidth16bpp, subTileHeight16bpp, microTileWidthBytes16bpp, microTileHeight16bpp),
	32: buildTileInfo(32, subTileWidth32bpp, subTileHeight32bpp, microTileWidthBytes32bpp, microTileHeight32bpp),
}

func buildTileInfo(bpp, subW, subH, microWBytes, microH int) TileInfo {
	subWBytes := subW * (bpp / 8)
	return TileInfo{
		BitsPerPixel:        bpp,
		SubTileWidthPixels:  subW,
		SubTileHeightPixels: subH,
		SubTileWidthBytes:   subWBytes,
		MicroTileWidthBytes: microWBytes,
		MicroTileHeight:     microH,
		TileWidthPixels:     subW * 2,
		TileHeightPixels:    subH * 2,
		TileWidthBytes:      subWBytes * 2,
	}
}

// TileInfoFor returns the tile geometry for bpp.
// Unsupported bit depths return the zero TileInfo; check Valid.
func TileInfoFor(bpp int) TileInfo {
	return tileInfoTable[bpp]
}

// TileInfoForClass returns the tile geometry for a format class.
func TileInfoForClass(c FormatClass) TileInfo {
	return TileInfoFor(c.BitsPerPixel())
}

// Valid reports whether t describes a supported bit depth.
func (t TileInfo) Valid() bool {
	return t.BitsPerPixel != 0 && t.MicroTileWidthBytes != 0 && t.MicroTileHeight != 0
}

// BytesPerPixel returns the pixel size in bytes.
func (t TileInfo) BytesPerPixel() int {
	return t.BitsPerPixel / 8
}

// TileSizeBytes returns the size of one 4K tile.
func (t TileInfo) TileSizeBytes() int {
	return t.TileWidthBytes * t.TileHeightPixels
}

// SubTileSizeBytes returns the size of one 1K sub-tile.
func (t TileInfo) SubTileSizeBytes() int {
	return t.SubTileWidthBytes * t.SubTileHeightPixels
}

// MicroTileSizeBytes returns the size of one micro-tile.
func (t TileInfo) MicroTileSizeBytes() int {
	return t.MicroTileWidthBytes * t.MicroTileHeight
}

// MicroTileWidthPixels returns the micro-tile width in pixels.
func (t TileInfo) MicroTileWidthPixels() int {
	if t.BitsPerPixel == 0 {
		return 0
	}
	return t.MicroTileWidthBytes / t.BytesPerPixel()
}

// TileCount returns how many 4K tiles cover a width x height surface.
// Empty extents still take one tile in each direction.
func (t TileInfo) TileCount(width, height int) (tilesX, tilesY int) {
	if !t.Valid() {
		return 0, 0
	}
	return max(1, divCeil(width, t.TileWidthPixels)), max(1, divCeil(height, t.TileHeightPixels))
}
