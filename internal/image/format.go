// Package image provides the linear pixel buffers that tiled surfaces are
// filled from and read back into.
//
// Buffers are row-major with an optional row stride, in one of the pixel
// layouts the tiler can store: 8, 16 and 32 bits per pixel.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit single channel (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRG8 is two 8-bit channels (2 bytes per pixel).
	FormatRG8

	// FormatRGBA8 is 32-bit RGBA, not premultiplied (4 bytes per pixel).
	FormatRGBA8

	// FormatBGRA8 is 32-bit BGRA, not premultiplied (4 bytes per pixel).
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of channels.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {BytesPerPixel: 1, Channels: 1},
	FormatRG8:   {BytesPerPixel: 2, Channels: 2},
	FormatRGBA8: {BytesPerPixel: 4, Channels: 4, HasAlpha: true},
	FormatBGRA8: {BytesPerPixel: 4, Channels: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// BitsPerPixel returns the number of bits per pixel for this format.
func (f Format) BitsPerPixel() int {
	return f.Info().BytesPerPixel * 8
}

// Channels returns the number of channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRG8:
		return "RG8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
