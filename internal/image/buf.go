package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a linear, row-major pixel buffer.
//
// Rows are Stride bytes apart; Stride may exceed the row size to match the
// pitch a surface layout asks for.
//
// Thread safety: ImageBuf is safe for concurrent read access. Writes
// require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImageBuf creates a new image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return NewImageBufWithStride(width, height, format, format.RowBytes(width))
}

// NewImageBufWithStride creates a new image buffer with custom stride for alignment.
// Stride must be at least format.RowBytes(width).
func NewImageBufWithStride(width, height int, format Format, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	// The last row only needs to reach the end of its pixels.
	requiredSize := (height-1)*stride + format.RowBytes(width)
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// PixelBytes returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.data[offset : offset+b.format.BytesPerPixel()]
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// Gray8 expands to r=g=b, RG8 leaves blue at 0; formats without alpha
// report a=255. Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	pixel := b.PixelBytes(x, y)
	if pixel == nil {
		return 0, 0, 0, 0
	}

	switch b.format {
	case FormatGray8:
		v := pixel[0]
		return v, v, v, 255
	case FormatRG8:
		return pixel[0], pixel[1], 0, 255
	case FormatRGBA8:
		return pixel[0], pixel[1], pixel[2], pixel[3]
	case FormatBGRA8:
		return pixel[2], pixel[1], pixel[0], pixel[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Gray8 stores the luminance, RG8 keeps red and green.
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}

	switch b.format {
	case FormatGray8:
		// Standard luminance: 0.299*R + 0.587*G + 0.114*B
		b.data[offset] = byte((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
	case FormatRG8:
		b.data[offset] = r
		b.data[offset+1] = g
	case FormatRGBA8:
		b.data[offset] = r
		b.data[offset+1] = g
		b.data[offset+2] = bl
		b.data[offset+3] = a
	case FormatBGRA8:
		b.data[offset] = bl
		b.data[offset+1] = g
		b.data[offset+2] = r
		b.data[offset+3] = a
	}
	return nil
}
