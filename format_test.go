package tiler

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		want   FormatClass
		bpp    int
	}{
		{gputypes.TextureFormatR8Unorm, ClassByte1, 8},
		{gputypes.TextureFormatRG8Unorm, ClassByte2, 16},
		{gputypes.TextureFormatRGBA8Unorm, ClassByte4, 32},
		{gputypes.TextureFormatBGRA8Unorm, ClassByte4, 32},
		{gputypes.TextureFormatDepth24PlusStencil8, ClassByte4Depth, 32},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := ClassOf(tt.format)
			if err != nil {
				t.Fatalf("ClassOf(%v) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ClassOf(%v) = %v, want %v", tt.format, got, tt.want)
			}
			if got.BitsPerPixel() != tt.bpp {
				t.Errorf("BitsPerPixel() = %d, want %d", got.BitsPerPixel(), tt.bpp)
			}
		})
	}
}

func TestClassOf_Unsupported(t *testing.T) {
	for _, f := range []gputypes.TextureFormat{
		gputypes.TextureFormatUndefined,
		gputypes.TextureFormatDepth32Float,
	} {
		if _, err := ClassOf(f); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ClassOf(%v) error = %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

func TestFormatClass_Invalid(t *testing.T) {
	c := FormatClass(42)
	if c.IsValid() {
		t.Error("FormatClass(42).IsValid() = true")
	}
	if c.BitsPerPixel() != 0 || c.BytesPerPixel() != 0 {
		t.Error("unknown class should report zero size")
	}
	if c.String() != "Unknown" {
		t.Errorf("String() = %q, want Unknown", c.String())
	}
}
