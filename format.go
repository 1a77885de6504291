package tiler

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// FormatClass is the hardware pixel format class of a surface.
//
// The class fixes the bit depth, and the bit depth drives every tile
// dimension. Each declared format maps to exactly one class.
type FormatClass uint8

const (
	// ClassByte1 is an 8 bpp surface (hardware format X8).
	ClassByte1 FormatClass = iota

	// ClassByte2 is a 16 bpp surface (hardware format X16).
	ClassByte2

	// ClassByte4Depth is a 32 bpp depth/stencil surface (hardware format D24S8).
	ClassByte4Depth

	// ClassByte4 is a 32 bpp color surface (hardware format X8888).
	ClassByte4

	// classCount is the number of classes (for internal use).
	classCount
)

// classBits holds bits per pixel for each class.
var classBits = [classCount]int{
	ClassByte1:      8,
	ClassByte2:      16,
	ClassByte4Depth: 32,
	ClassByte4:      32,
}

// BitsPerPixel returns the bit depth of the class, or 0 for unknown classes.
func (c FormatClass) BitsPerPixel() int {
	if c >= classCount {
		return 0
	}
	return classBits[c]
}

// BytesPerPixel returns the number of bytes per pixel.
func (c FormatClass) BytesPerPixel() int {
	return c.BitsPerPixel() / 8
}

// IsValid returns true if the class is a known class.
func (c FormatClass) IsValid() bool {
	return c < classCount
}

// String returns the hardware format name of the class.
func (c FormatClass) String() string {
	switch c {
	case ClassByte1:
		return "X8"
	case ClassByte2:
		return "X16"
	case ClassByte4Depth:
		return "D24S8"
	case ClassByte4:
		return "X8888"
	default:
		return "Unknown"
	}
}

// ClassOf maps a declared texture format to its hardware format class.
//
// Formats outside the table return ErrUnsupportedFormat; they are never
// silently treated as 32 bpp.
func ClassOf(format gputypes.TextureFormat) (FormatClass, error) {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return ClassByte1, nil
	case gputypes.TextureFormatRG8Unorm:
		return ClassByte2, nil
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return ClassByte4, nil
	case gputypes.TextureFormatDepth24PlusStencil8:
		return ClassByte4Depth, nil
	default:
		return 0, fmt.Errorf("%w: texture format %v", ErrUnsupportedFormat, format)
	}
}

// isDepthFormat reports whether format carries depth or stencil.
func isDepthFormat(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatDepth24PlusStencil8
}
